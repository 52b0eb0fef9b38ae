// Package ports - UnitOfWork паттерн для управления транзакциями.
//
// Pattern: Unit of Work
// - Один UnitOfWork.Execute = одно соединение из пула = одна транзакция
// - Автоматический rollback при ошибке
// - Соединение возвращается в пул на любом пути выхода
package ports

import "context"

// UnitOfWork определяет контракт для управления транзакциями.
//
// Пример использования:
//
//	err := uow.Execute(ctx, func(txCtx context.Context) error {
//	    id, err := procedures.Insert(txCtx, procedure)
//	    if err != nil {
//	        return err // ROLLBACK
//	    }
//	    return procedures.AddZone(txCtx, id, zone)
//	})
//	// nil  -> COMMIT
//	// err  -> *errors.TransactionError (primary + rollback failure)
//	//      или *errors.InfrastructureError (транзакция не началась)
type UnitOfWork interface {
	// Execute выполняет fn внутри транзакции.
	// Все репозитории внутри fn должны получать txCtx, а не ctx.
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error
}
