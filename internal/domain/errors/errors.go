// Package errors defines domain-specific error types.
// Using typed errors (instead of strings) allows the HTTP layer to map
// failures onto status codes without inspecting messages.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidEntityID = errors.New("invalid entity ID")
	ErrEntityNotFound  = errors.New("entity not found")

	// Patient errors
	ErrPatientNameRequired = errors.New("patient name is required")

	// Procedure errors
	ErrInvalidProcedureDate = errors.New("invalid procedure date")
	ErrZoneIDRequired       = errors.New("zone id is required")
)

// DomainError wraps an error with a machine-readable code.
type DomainError struct {
	Code    string // e.g. "PATIENT_HAS_PROCEDURES"
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a client-input failure for a single field.
// Validation errors are always produced before any database access.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("validation failed: %d error(s), first: %s", len(e), e[0].Error())
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// OrNil returns nil for an empty collection so callers can `return errs.OrNil()`.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// NotFoundError reports that a mutation or lookup matched no row.
type NotFoundError struct {
	Resource string // "Patient", "Procedure"
	ID       int64
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrEntityNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InfrastructureError is a failure that happened before any transaction
// existed: pool exhaustion, connection acquisition, BEGIN.
type InfrastructureError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("infrastructure failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates an InfrastructureError.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// TransactionError is the outcome of a transaction that was started and then
// reverted (or failed to commit). Err is the primary failure. RollbackErr is
// set only when the ROLLBACK itself failed; it never replaces Err.
type TransactionError struct {
	Op          string
	Err         error
	RollbackErr error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("transaction %s failed: %v (rollback also failed: %v)", e.Op, e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("transaction %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the primary failure.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// RolledBack reports whether the rollback completed cleanly.
func (e *TransactionError) RolledBack() bool {
	return e.RollbackErr == nil
}

// NewTransactionError creates a TransactionError.
func NewTransactionError(op string, err, rollbackErr error) *TransactionError {
	return &TransactionError{Op: op, Err: err, RollbackErr: rollbackErr}
}

// Helper functions for common error checking

// IsNotFound checks if an error is an "entity not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}

// AsNotFound extracts a NotFoundError from the chain.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var valErr ValidationError
	var valErrs ValidationErrors
	return errors.As(err, &valErr) || errors.As(err, &valErrs)
}

// IsInfrastructureError checks for a pre-transaction infrastructure failure.
func IsInfrastructureError(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}

// IsTransactionError checks whether the error came out of a reverted transaction.
func IsTransactionError(err error) bool {
	var te *TransactionError
	return errors.As(err, &te)
}
