package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Read models. They are projections built by queries, not aggregates,
// so they are plain structs without invariants.

// ZoneDose is one treated zone of a procedure as seen by readers.
type ZoneDose struct {
	ZoneName string
	Pulses   *int
}

// PatientProcedure is a procedure of one patient with its zones aggregated.
type PatientProcedure struct {
	ID         int64
	Date       time.Time
	TotalPrice decimal.Decimal
	Comment    *string
	Zones      []ZoneDose
}

// ProcedureLine is one (procedure, zone) pair of the flattened listing.
type ProcedureLine struct {
	ProcedureID int64
	PatientID   int64
	PatientName string
	Date        time.Time
	TotalPrice  decimal.Decimal
	ZoneName    string
}
