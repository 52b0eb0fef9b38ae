package procedure

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// ListPatientProceduresUseCase - процедуры пациента с зонами, новые первыми.
// Несуществующий пациент даёт пустой список, а не 404.
type ListPatientProceduresUseCase struct {
	procedures ports.ProcedureRepository
}

// NewListPatientProceduresUseCase создаёт use case.
func NewListPatientProceduresUseCase(procedures ports.ProcedureRepository) *ListPatientProceduresUseCase {
	return &ListPatientProceduresUseCase{procedures: procedures}
}

// Execute выполняет use case.
func (uc *ListPatientProceduresUseCase) Execute(ctx context.Context, query dtos.ListPatientProceduresQuery) ([]dtos.PatientProcedureDTO, error) {
	if query.PatientID <= 0 {
		return nil, errors.NewValidationError("id", errors.ErrInvalidEntityID.Error())
	}

	items, err := uc.procedures.ListByPatient(ctx, query.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures of patient %d: %w", query.PatientID, err)
	}
	return dtos.ToPatientProcedureDTOList(items), nil
}

// ListProcedureLinesUseCase - плоский список всех процедур (строка на зону).
type ListProcedureLinesUseCase struct {
	procedures ports.ProcedureRepository
}

// NewListProcedureLinesUseCase создаёт use case.
func NewListProcedureLinesUseCase(procedures ports.ProcedureRepository) *ListProcedureLinesUseCase {
	return &ListProcedureLinesUseCase{procedures: procedures}
}

// Execute выполняет use case.
func (uc *ListProcedureLinesUseCase) Execute(ctx context.Context) ([]dtos.ProcedureLineDTO, error) {
	lines, err := uc.procedures.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	return dtos.ToProcedureLineDTOList(lines), nil
}
