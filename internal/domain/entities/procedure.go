package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// DateLayout is the calendar-date format used for procedure dates.
const DateLayout = "2006-01-02"

// ProcedureZone links a procedure to one treated zone.
//
// pulses is optional: nil means "not recorded", which is different from
// zero pulses delivered.
type ProcedureZone struct {
	zoneID int64
	pulses *int
}

// NewProcedureZone validates a zone entry of a procedure.
func NewProcedureZone(zoneID *int64, pulses *int) (ProcedureZone, error) {
	if zoneID == nil {
		return ProcedureZone{}, errors.ValidationError{
			Field:   "id_zona",
			Message: errors.ErrZoneIDRequired.Error(),
		}
	}
	return ProcedureZone{zoneID: *zoneID, pulses: pulses}, nil
}

func (z ProcedureZone) ZoneID() int64 { return z.zoneID }
func (z ProcedureZone) Pulses() *int  { return z.pulses }

// Procedure is a billed treatment session for a patient on a given date.
//
// Aggregate root: the header row and its ProcedureZone rows are always
// written, replaced and deleted together in one transaction.
type Procedure struct {
	id         int64
	patientID  int64
	date       time.Time
	totalPrice decimal.Decimal
	comment    *string
	zones      []ProcedureZone
}

// NewProcedure creates a procedure that is about to be inserted.
//
// Business Rules:
// - patientID must be a positive identity
// - date must be an ISO calendar date (YYYY-MM-DD)
// - totalPrice may be zero
// - zones may be empty; duplicates are allowed
func NewProcedure(patientID int64, date string, totalPrice decimal.Decimal, comment *string, zones []ProcedureZone) (*Procedure, error) {
	var errs errors.ValidationErrors

	if patientID <= 0 {
		errs.Add("id_paciente", "must be a positive identity")
	}
	parsed, err := ParseProcedureDate(date)
	if err != nil {
		errs.Add("data", err.Error())
	}
	if errs.HasErrors() {
		return nil, errs
	}

	return &Procedure{
		patientID:  patientID,
		date:       parsed,
		totalPrice: totalPrice,
		comment:    normalizeComment(comment),
		zones:      zones,
	}, nil
}

// ReviseProcedure builds the replacement state of an existing procedure.
// The owning patient is not part of a revision and stays untouched.
func ReviseProcedure(id int64, date string, totalPrice decimal.Decimal, comment *string, zones []ProcedureZone) (*Procedure, error) {
	var errs errors.ValidationErrors

	if id <= 0 {
		errs.Add("id", errors.ErrInvalidEntityID.Error())
	}
	parsed, err := ParseProcedureDate(date)
	if err != nil {
		errs.Add("data", err.Error())
	}
	if errs.HasErrors() {
		return nil, errs
	}

	return &Procedure{
		id:         id,
		date:       parsed,
		totalPrice: totalPrice,
		comment:    normalizeComment(comment),
		zones:      zones,
	}, nil
}

// ParseProcedureDate parses an ISO YYYY-MM-DD date in UTC.
func ParseProcedureDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", errors.ErrInvalidProcedureDate, s)
	}
	return t, nil
}

// normalizeComment turns a blank comment into "no comment".
func normalizeComment(c *string) *string {
	if c == nil || strings.TrimSpace(*c) == "" {
		return nil
	}
	return c
}

func (p *Procedure) ID() int64                   { return p.id }
func (p *Procedure) PatientID() int64            { return p.patientID }
func (p *Procedure) Date() time.Time             { return p.date }
func (p *Procedure) TotalPrice() decimal.Decimal { return p.totalPrice }
func (p *Procedure) Comment() *string            { return p.comment }

// Zones returns the zone entries in input order.
func (p *Procedure) Zones() []ProcedureZone {
	out := make([]ProcedureZone, len(p.zones))
	copy(out, p.zones)
	return out
}

// ZoneIDs returns only the zone identities, in input order.
func (p *Procedure) ZoneIDs() []int64 {
	ids := make([]int64, 0, len(p.zones))
	for _, z := range p.zones {
		ids = append(ids, z.zoneID)
	}
	return ids
}

// AssignID sets the identity generated by the database on insert.
func (p *Procedure) AssignID(id int64) {
	p.id = id
}
