package dtos

import "github.com/shopspring/decimal"

// ============================================
// Commands
// ============================================

// ZoneEntry - одна зона в команде создания/обновления процедуры.
// ZoneID == nil означает, что клиент не прислал id_zona.
type ZoneEntry struct {
	ZoneID *int64
	Pulses *int
}

// CreateProcedureCommand - команда создания процедуры с зонами.
type CreateProcedureCommand struct {
	PatientID  int64
	Date       string // YYYY-MM-DD
	TotalPrice decimal.Decimal
	Comment    *string
	Zones      []ZoneEntry
}

// UpdateProcedureCommand - команда замены полей и набора зон процедуры.
type UpdateProcedureCommand struct {
	ProcedureID int64
	Date        string
	TotalPrice  decimal.Decimal
	Comment     *string
	Zones       []ZoneEntry
}

// DeleteProcedureCommand - команда удаления процедуры с зонами.
type DeleteProcedureCommand struct {
	ProcedureID int64
}

// ============================================
// Queries
// ============================================

// ListPatientProceduresQuery - процедуры одного пациента.
type ListPatientProceduresQuery struct {
	PatientID int64
}

// ============================================
// Response DTOs
// ============================================

// ZoneDoseDTO - зона внутри процедуры пациента.
type ZoneDoseDTO struct {
	Zona        string `json:"zona"`
	Pulsaciones *int   `json:"pulsaciones"`
}

// PatientProcedureDTO - процедура пациента с агрегированными зонами.
type PatientProcedureDTO struct {
	IDProcedura int64         `json:"idProcedura"`
	Data        Date          `json:"data"`
	ObshtaCena  Amount        `json:"obshtaCena"`
	Komentar    *string       `json:"komentar"`
	Zonas       []ZoneDoseDTO `json:"zonas"`
}

// ProcedureLineDTO - строка плоского списка процедур.
type ProcedureLineDTO struct {
	IDProcedura    int64  `json:"idProcedura"`
	IDPaciente     int64  `json:"idPaciente"`
	NombrePaciente string `json:"nombrePaciente"`
	Data           Date   `json:"data"`
	ObshtaCena     Amount `json:"obshtaCena"`
	Zona           string `json:"zona"`
}

// ProcedureSavedDTO - результат создания/обновления процедуры.
type ProcedureSavedDTO struct {
	Message     string `json:"message"`
	IDProcedura int64  `json:"id_procedura"`
}

// ProcedureDeletedDTO - результат удаления процедуры.
type ProcedureDeletedDTO struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rowsAffected"`
}
