// Package postgres - UnitOfWork implementation для PostgreSQL.
//
// Unit of Work Pattern:
// - Одно соединение из пула и одна транзакция на вызов Execute
// - ROLLBACK при любой ошибке fn, COMMIT при успехе
// - Соединение возвращается в пул на любом пути выхода
//
// Usage:
//
//	err := uow.Execute(ctx, func(txCtx context.Context) error {
//	    id, err := procedures.Insert(txCtx, p)
//	    if err != nil {
//	        return err // ROLLBACK
//	    }
//	    return procedures.AddZone(txCtx, id, zone) // COMMIT если nil
//	})
package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Haleralex/lasercare/internal/application/ports"
	domainErrors "github.com/Haleralex/lasercare/internal/domain/errors"
	"github.com/Haleralex/lasercare/internal/pkg/metrics"
)

var tracer = otel.Tracer("lasercare/postgres")

// Compile-time check
var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// txConn - соединение, взятое из пула. *pgxpool.Conn удовлетворяет ему.
type txConn interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Release()
}

// connSource выдаёт соединения. В проде это pgxpool, в тестах - fake.
type connSource interface {
	Acquire(ctx context.Context) (txConn, error)
}

type poolSource struct {
	pool *pgxpool.Pool
}

func (s poolSource) Acquire(ctx context.Context) (txConn, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// UnitOfWork реализует ports.UnitOfWork с PostgreSQL транзакциями.
//
// Thread-safe: каждый Execute работает на своём соединении.
// Transaction isolation: READ COMMITTED.
type UnitOfWork struct {
	conns   connSource
	opts    pgx.TxOptions
	timeout time.Duration
	logger  *slog.Logger
}

// NewUnitOfWork создаёт UnitOfWork поверх пула.
// timeout ограничивает длительность транзакции; 0 - без ограничения.
func NewUnitOfWork(pool *pgxpool.Pool, logger *slog.Logger, timeout time.Duration) *UnitOfWork {
	return newUnitOfWork(poolSource{pool: pool}, logger, timeout)
}

func newUnitOfWork(conns connSource, logger *slog.Logger, timeout time.Duration) *UnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWork{
		conns:   conns,
		opts:    pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
		timeout: timeout,
		logger:  logger,
	}
}

// Execute выполняет fn внутри транзакции.
//
// Поведение:
//   - отмена ctx клиентом не прерывает начатую транзакцию
//   - не удалось взять соединение или выполнить BEGIN: InfrastructureError
//   - fn вернула ошибку: ROLLBACK и TransactionError с этой ошибкой
//   - ROLLBACK упал: логируется и кладётся в RollbackErr
//   - COMMIT упал: TransactionError
//   - panic: ROLLBACK + re-panic
//
// Если в ctx уже есть транзакция, fn выполняется в ней же.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) (err error) {
	if hasTx(ctx) {
		return fn(ctx)
	}

	ctx = context.WithoutCancel(ctx)
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "unit_of_work",
		trace.WithAttributes(attribute.String("tx.isolation", string(u.opts.IsoLevel))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	conn, err := u.conns.Acquire(ctx)
	if err != nil {
		metrics.ObserveTransaction(metrics.TxBeginFailed, 0)
		return domainErrors.NewInfrastructureError("acquire connection", err)
	}
	defer conn.Release()

	start := time.Now()
	tx, err := conn.BeginTx(ctx, u.opts)
	if err != nil {
		metrics.ObserveTransaction(metrics.TxBeginFailed, 0)
		return domainErrors.NewInfrastructureError("begin transaction", err)
	}

	defer func() {
		if r := recover(); r != nil {
			u.rollback(ctx, tx, start, nil)
			panic(r)
		}
	}()

	if fnErr := fn(injectTx(ctx, tx)); fnErr != nil {
		rbErr := u.rollback(ctx, tx, start, fnErr)
		return domainErrors.NewTransactionError("execute", fnErr, rbErr)
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.ObserveTransaction(metrics.TxCommitFailed, time.Since(start))
		return domainErrors.NewTransactionError("commit", err, nil)
	}

	metrics.ObserveTransaction(metrics.TxCommitted, time.Since(start))
	return nil
}

// rollback откатывает транзакцию на background context, чтобы ROLLBACK
// дошёл до сервера даже после истечения timeout.
func (u *UnitOfWork) rollback(ctx context.Context, tx pgx.Tx, start time.Time, cause error) error {
	rbErr := tx.Rollback(context.Background())
	if rbErr != nil {
		metrics.ObserveTransaction(metrics.TxRollbackFailed, time.Since(start))
		u.logger.ErrorContext(ctx, "rollback failed",
			slog.Any("error", rbErr),
			slog.Any("original_error", cause),
		)
		return rbErr
	}

	metrics.ObserveTransaction(metrics.TxRolledBack, time.Since(start))
	u.logger.DebugContext(ctx, "transaction rolled back", slog.Any("error", cause))
	return nil
}
