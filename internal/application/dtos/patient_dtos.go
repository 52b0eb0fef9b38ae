// Package dtos определяет Data Transfer Objects для передачи данных между слоями.
//
// Commands/Queries приходят из HTTP слоя уже типизированными,
// Response DTOs сериализуются в JSON как есть. Ключи ответов совпадают с
// тем, что ожидает фронтенд: camelCase для чтения, snake_case id_procedura
// в ответах на запись процедур.
//
// Pattern: Data Transfer Object
package dtos

import "github.com/shopspring/decimal"

// ============================================
// Messages
// ============================================

const (
	MsgPatientCreated   = "Patient created successfully"
	MsgPatientUpdated   = "Patient updated successfully"
	MsgPatientDeleted   = "Patient deleted successfully"
	MsgProcedureCreated = "Procedure created successfully"
	MsgProcedureUpdated = "Procedure updated successfully"
	MsgProcedureDeleted = "Procedure deleted successfully"
)

// ============================================
// Commands
// ============================================

// CreatePatientCommand - команда для создания пациента.
type CreatePatientCommand struct {
	Name    string
	Sex     *string
	Phone   *string
	Email   *string
	Balance *decimal.Decimal // nil = 0
}

// UpdatePatientCommand - команда для обновления пациента.
type UpdatePatientCommand struct {
	PatientID int64
	Name      string
	Sex       *string
	Phone     *string
	Email     *string
	Balance   *decimal.Decimal // nil = не изменять
}

// DeletePatientCommand - команда для удаления пациента.
type DeletePatientCommand struct {
	PatientID int64
}

// ============================================
// Queries
// ============================================

// GetPatientQuery - запрос пациента по id.
type GetPatientQuery struct {
	PatientID int64
}

// ============================================
// Response DTOs
// ============================================

// PatientDTO - представление пациента для API.
type PatientDTO struct {
	ID      int64   `json:"id"`
	Ime     string  `json:"ime"`
	Pol     *string `json:"pol"`
	Telefon *string `json:"telefon"`
	Email   *string `json:"email"`
	Balans  Amount  `json:"balans"`
}

// PatientCreatedDTO - результат создания пациента.
type PatientCreatedDTO struct {
	Message      string `json:"message"`
	ID           int64  `json:"id"`
	RowsAffected int64  `json:"rowsAffected"`
}

// PatientChangedDTO - результат обновления/удаления пациента.
type PatientChangedDTO struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
