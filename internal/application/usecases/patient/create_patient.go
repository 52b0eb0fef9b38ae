package patient

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
)

// CreatePatientUseCase создаёт пациента.
//
// Сценарий:
// 1. Создать entity (ime обязателен)
// 2. INSERT ... RETURNING id_paciente
// 3. Вернуть DTO с новым id
type CreatePatientUseCase struct {
	patients ports.PatientRepository
}

// NewCreatePatientUseCase создаёт use case.
func NewCreatePatientUseCase(patients ports.PatientRepository) *CreatePatientUseCase {
	return &CreatePatientUseCase{patients: patients}
}

// Execute выполняет use case.
func (uc *CreatePatientUseCase) Execute(ctx context.Context, cmd dtos.CreatePatientCommand) (*dtos.PatientCreatedDTO, error) {
	p, err := entities.NewPatient(cmd.Name, cmd.Sex, cmd.Phone, cmd.Email, cmd.Balance)
	if err != nil {
		return nil, err
	}

	if err := uc.patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save patient: %w", err)
	}

	return &dtos.PatientCreatedDTO{
		Message:      dtos.MsgPatientCreated,
		ID:           p.ID(),
		RowsAffected: 1,
	}, nil
}
