package procedure

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// CreateProcedureUseCase создаёт процедуру вместе с зонами.
//
// Сценарий:
// 1. Проверить команду (id_paciente, data, id_zona у каждой зоны) - без I/O
// 2. В одной транзакции: INSERT procedura RETURNING id_procedura
// 3. Для каждой зоны по порядку: INSERT procedura_zona; первая ошибка
//    прерывает цикл и откатывает всё
// 4. COMMIT и вернуть id_procedura
type CreateProcedureUseCase struct {
	procedures ports.ProcedureRepository
	uow        ports.UnitOfWork
}

// NewCreateProcedureUseCase создаёт use case.
func NewCreateProcedureUseCase(procedures ports.ProcedureRepository, uow ports.UnitOfWork) *CreateProcedureUseCase {
	return &CreateProcedureUseCase{procedures: procedures, uow: uow}
}

// Execute выполняет use case.
//
// Errors:
//   - ValidationErrors: невалидная команда, транзакция не начиналась
//   - InfrastructureError: не удалось взять соединение / начать транзакцию
//   - TransactionError: один из INSERT упал, всё откачено
func (uc *CreateProcedureUseCase) Execute(ctx context.Context, cmd dtos.CreateProcedureCommand) (*dtos.ProcedureSavedDTO, error) {
	var errs errors.ValidationErrors
	zones := buildZones(cmd.Zones, &errs)

	procedure, err := entities.NewProcedure(cmd.PatientID, cmd.Date, cmd.TotalPrice, cmd.Comment, zones)
	if err := mergeValidation(errs, err); err != nil {
		return nil, err
	}

	err = uc.uow.Execute(ctx, func(txCtx context.Context) error {
		id, err := uc.procedures.Insert(txCtx, procedure)
		if err != nil {
			return fmt.Errorf("insert procedure: %w", err)
		}
		procedure.AssignID(id)

		for i, zone := range procedure.Zones() {
			if err := uc.procedures.AddZone(txCtx, id, zone); err != nil {
				return fmt.Errorf("insert zone #%d (id_zona=%d): %w", i+1, zone.ZoneID(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dtos.ProcedureSavedDTO{
		Message:     dtos.MsgProcedureCreated,
		IDProcedura: procedure.ID(),
	}, nil
}
