package procedure

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// UpdateProcedureUseCase заменяет поля процедуры и весь набор её зон.
//
// Сценарий (одна транзакция):
// 1. UPDATE procedura (data, obshta_cena, komentar); 0 строк -> NotFound
// 2. DELETE procedura_zona процедуры
// 3. INSERT procedura_zona (id_procedura, id_zona) на каждую зону
//
// pulsaciones записываются только при создании: при замене набора зон
// они не переносятся и остаются NULL.
type UpdateProcedureUseCase struct {
	procedures ports.ProcedureRepository
	uow        ports.UnitOfWork
}

// NewUpdateProcedureUseCase создаёт use case.
func NewUpdateProcedureUseCase(procedures ports.ProcedureRepository, uow ports.UnitOfWork) *UpdateProcedureUseCase {
	return &UpdateProcedureUseCase{procedures: procedures, uow: uow}
}

// Execute выполняет use case.
func (uc *UpdateProcedureUseCase) Execute(ctx context.Context, cmd dtos.UpdateProcedureCommand) (*dtos.ProcedureSavedDTO, error) {
	var errs errors.ValidationErrors
	zones := buildZones(cmd.Zones, &errs)

	revision, err := entities.ReviseProcedure(cmd.ProcedureID, cmd.Date, cmd.TotalPrice, cmd.Comment, zones)
	if err := mergeValidation(errs, err); err != nil {
		return nil, err
	}

	id := revision.ID()
	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		affected, err := uc.procedures.UpdateHeader(txCtx, revision)
		if err != nil {
			return fmt.Errorf("update procedure: %w", err)
		}
		if affected == 0 {
			return errors.NewNotFoundError("Procedure", id)
		}

		if _, err := uc.procedures.DeleteZones(txCtx, id); err != nil {
			return fmt.Errorf("delete zones: %w", err)
		}

		if err := uc.procedures.InsertZoneRefs(txCtx, id, revision.ZoneIDs()); err != nil {
			return fmt.Errorf("insert zones: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dtos.ProcedureSavedDTO{
		Message:     dtos.MsgProcedureUpdated,
		IDProcedura: id,
	}, nil
}
