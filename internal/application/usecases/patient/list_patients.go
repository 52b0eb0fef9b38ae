// Package patient содержит use cases для работы с пациентами.
//
// Все операции здесь - одиночные SQL-выражения, поэтому UnitOfWork не
// используется: репозиторий сам берёт соединение из пула.
package patient

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
)

// ListPatientsUseCase возвращает всех пациентов.
type ListPatientsUseCase struct {
	patients ports.PatientRepository
}

// NewListPatientsUseCase создаёт use case.
func NewListPatientsUseCase(patients ports.PatientRepository) *ListPatientsUseCase {
	return &ListPatientsUseCase{patients: patients}
}

// Execute выполняет use case.
func (uc *ListPatientsUseCase) Execute(ctx context.Context) ([]dtos.PatientDTO, error) {
	patients, err := uc.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return dtos.ToPatientDTOList(patients), nil
}
