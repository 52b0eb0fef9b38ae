package patient

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// UpdatePatientUseCase перезаписывает данные пациента.
// Ноль затронутых строк означает, что пациента нет (404).
type UpdatePatientUseCase struct {
	patients ports.PatientRepository
}

// NewUpdatePatientUseCase создаёт use case.
func NewUpdatePatientUseCase(patients ports.PatientRepository) *UpdatePatientUseCase {
	return &UpdatePatientUseCase{patients: patients}
}

// Execute выполняет use case.
func (uc *UpdatePatientUseCase) Execute(ctx context.Context, cmd dtos.UpdatePatientCommand) (*dtos.PatientChangedDTO, error) {
	if cmd.PatientID <= 0 {
		return nil, errors.NewValidationError("id", errors.ErrInvalidEntityID.Error())
	}

	p, err := entities.NewPatient(cmd.Name, cmd.Sex, cmd.Phone, cmd.Email, cmd.Balance)
	if err != nil {
		return nil, err
	}

	affected, err := uc.patients.Update(ctx, cmd.PatientID, p, cmd.Balance != nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	if affected == 0 {
		return nil, errors.NewNotFoundError("Patient", cmd.PatientID)
	}

	return &dtos.PatientChangedDTO{Message: dtos.MsgPatientUpdated, ID: cmd.PatientID}, nil
}
