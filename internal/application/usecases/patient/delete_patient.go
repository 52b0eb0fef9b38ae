package patient

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// DeletePatientUseCase удаляет пациента.
//
// Пациент с процедурами не удаляется: FK procedura.id_paciente вернёт
// ошибку, которая уйдёт клиенту как 500.
type DeletePatientUseCase struct {
	patients ports.PatientRepository
}

// NewDeletePatientUseCase создаёт use case.
func NewDeletePatientUseCase(patients ports.PatientRepository) *DeletePatientUseCase {
	return &DeletePatientUseCase{patients: patients}
}

// Execute выполняет use case.
func (uc *DeletePatientUseCase) Execute(ctx context.Context, cmd dtos.DeletePatientCommand) (*dtos.PatientChangedDTO, error) {
	if cmd.PatientID <= 0 {
		return nil, errors.NewValidationError("id", errors.ErrInvalidEntityID.Error())
	}

	affected, err := uc.patients.Delete(ctx, cmd.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete patient: %w", err)
	}
	if affected == 0 {
		return nil, errors.NewNotFoundError("Patient", cmd.PatientID)
	}

	return &dtos.PatientChangedDTO{Message: dtos.MsgPatientDeleted, ID: cmd.PatientID}, nil
}
