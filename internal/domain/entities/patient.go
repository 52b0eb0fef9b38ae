// Package entities contains domain entities with identity and lifecycle.
// Entities are compared by their ID, not by their attributes.
//
// Entities here never touch the database or HTTP: constructors validate
// input, Reconstruct* functions hydrate from storage without validation.
package entities

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// Patient represents a clinic patient.
//
// Identity (id_paciente) is generated by the database on insert, so a
// freshly constructed Patient has ID() == 0 until it is persisted.
type Patient struct {
	id      int64
	name    string
	sex     *string
	phone   *string
	email   *string
	balance decimal.Decimal
}

// NewPatient creates a new Patient with validation.
//
// Business Rules:
// - Name (ime) is required and must not be blank
// - Balance defaults to zero when not supplied
func NewPatient(name string, sex, phone, email *string, balance *decimal.Decimal) (*Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ValidationError{
			Field:   "ime",
			Message: errors.ErrPatientNameRequired.Error(),
		}
	}

	p := &Patient{
		name:  name,
		sex:   sex,
		phone: phone,
		email: email,
	}
	if balance != nil {
		p.balance = *balance
	}
	return p, nil
}

// ReconstructPatient hydrates a Patient from stored data. No validation.
func ReconstructPatient(id int64, name string, sex, phone, email *string, balance decimal.Decimal) *Patient {
	return &Patient{
		id:      id,
		name:    name,
		sex:     sex,
		phone:   phone,
		email:   email,
		balance: balance,
	}
}

// ID returns the patient's identity (0 if not yet persisted).
func (p *Patient) ID() int64 { return p.id }

// Name returns the patient's name (ime).
func (p *Patient) Name() string { return p.name }

// Sex returns the patient's sex (pol), nil if unknown.
func (p *Patient) Sex() *string { return p.sex }

// Phone returns the phone number (telefon).
func (p *Patient) Phone() *string { return p.phone }

// Email returns the e-mail address.
func (p *Patient) Email() *string { return p.email }

// Balance returns the account balance (balans).
func (p *Patient) Balance() decimal.Decimal { return p.balance }

// AssignID sets the identity generated by the database.
// Only the repository calls this, right after INSERT ... RETURNING.
func (p *Patient) AssignID(id int64) {
	p.id = id
}
