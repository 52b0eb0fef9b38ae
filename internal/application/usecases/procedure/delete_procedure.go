package procedure

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// DeleteProcedureUseCase удаляет процедуру: сначала строки procedura_zona,
// затем заголовок, в одной транзакции.
type DeleteProcedureUseCase struct {
	procedures ports.ProcedureRepository
	uow        ports.UnitOfWork
}

// NewDeleteProcedureUseCase создаёт use case.
func NewDeleteProcedureUseCase(procedures ports.ProcedureRepository, uow ports.UnitOfWork) *DeleteProcedureUseCase {
	return &DeleteProcedureUseCase{procedures: procedures, uow: uow}
}

// Execute выполняет use case. Процедура без зон удаляется без ошибок;
// отсутствие заголовка даёт NotFoundError и откат.
func (uc *DeleteProcedureUseCase) Execute(ctx context.Context, cmd dtos.DeleteProcedureCommand) (*dtos.ProcedureDeletedDTO, error) {
	if cmd.ProcedureID <= 0 {
		return nil, errors.NewValidationError("id", errors.ErrInvalidEntityID.Error())
	}

	var affected int64
	err := uc.uow.Execute(ctx, func(txCtx context.Context) error {
		if _, err := uc.procedures.DeleteZones(txCtx, cmd.ProcedureID); err != nil {
			return fmt.Errorf("delete zones: %w", err)
		}

		n, err := uc.procedures.DeleteHeader(txCtx, cmd.ProcedureID)
		if err != nil {
			return fmt.Errorf("delete procedure: %w", err)
		}
		if n == 0 {
			return errors.NewNotFoundError("Procedure", cmd.ProcedureID)
		}
		affected = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dtos.ProcedureDeletedDTO{
		Message:      dtos.MsgProcedureDeleted,
		RowsAffected: affected,
	}, nil
}
