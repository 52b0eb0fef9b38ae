package patient

import (
	"context"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// GetPatientUseCase загружает одного пациента.
type GetPatientUseCase struct {
	patients ports.PatientRepository
}

// NewGetPatientUseCase создаёт use case.
func NewGetPatientUseCase(patients ports.PatientRepository) *GetPatientUseCase {
	return &GetPatientUseCase{patients: patients}
}

// Execute возвращает NotFoundError, если пациента нет.
func (uc *GetPatientUseCase) Execute(ctx context.Context, query dtos.GetPatientQuery) (*dtos.PatientDTO, error) {
	if query.PatientID <= 0 {
		return nil, errors.NewValidationError("id", errors.ErrInvalidEntityID.Error())
	}

	p, err := uc.patients.FindByID(ctx, query.PatientID)
	if err != nil {
		return nil, err
	}

	dto := dtos.ToPatientDTO(p)
	return &dto, nil
}
