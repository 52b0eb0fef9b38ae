package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/Haleralex/lasercare/internal/domain/errors"
)

// ============================================
// Fakes
// ============================================

// fakeTx - pgx.Tx, у которого реализованы только Commit и Rollback.
// Остальные методы достались от nil-интерфейса и паникуют при вызове.
type fakeTx struct {
	pgx.Tx

	commitErr   error
	rollbackErr error

	committed      int
	rolledBack     int
	rollbackCtxErr error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed++
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack++
	t.rollbackCtxErr = ctx.Err()
	return t.rollbackErr
}

type fakeConn struct {
	tx       *fakeTx
	beginErr error
	released int
}

func (c *fakeConn) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return c.tx, nil
}

func (c *fakeConn) Release() { c.released++ }

type fakeSource struct {
	conn       *fakeConn
	acquireErr error
	acquired   int
}

func (s *fakeSource) Acquire(ctx context.Context) (txConn, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	s.acquired++
	return s.conn, nil
}

func newFakes() (*fakeSource, *fakeConn, *fakeTx) {
	tx := &fakeTx{}
	conn := &fakeConn{tx: tx}
	return &fakeSource{conn: conn}, conn, tx
}

// ============================================
// Tests
// ============================================

func TestUnitOfWork_Commit(t *testing.T) {
	src, conn, tx := newFakes()
	uow := newUnitOfWork(src, nil, 0)

	var sawTx bool
	err := uow.Execute(context.Background(), func(txCtx context.Context) error {
		sawTx = extractTx(txCtx) == pgx.Tx(tx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx, "fn must receive the transaction in its context")
	assert.Equal(t, 1, tx.committed)
	assert.Zero(t, tx.rolledBack)
	assert.Equal(t, 1, conn.released)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	src, conn, tx := newFakes()
	uow := newUnitOfWork(src, nil, 0)
	cause := errors.New("insert zone #2 (id_zona=99999): fk")

	err := uow.Execute(context.Background(), func(context.Context) error { return cause })

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	var txErr *domainErrors.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.True(t, txErr.RolledBack())
	assert.Equal(t, 1, tx.rolledBack)
	assert.Zero(t, tx.committed)
	assert.Equal(t, 1, conn.released)
}

func TestUnitOfWork_RollbackFailureKeepsPrimaryError(t *testing.T) {
	src, conn, tx := newFakes()
	tx.rollbackErr = errors.New("connection reset")
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	uow := newUnitOfWork(src, logger, 0)
	cause := errors.New("header update failed")

	err := uow.Execute(context.Background(), func(context.Context) error { return cause })

	var txErr *domainErrors.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Same(t, cause, txErr.Err)
	assert.Equal(t, tx.rollbackErr, txErr.RollbackErr)
	assert.False(t, txErr.RolledBack())
	assert.Contains(t, logs.String(), "rollback failed")
	assert.Contains(t, logs.String(), "connection reset")
	assert.Contains(t, logs.String(), "header update failed")
	assert.Equal(t, 1, conn.released)
}

func TestUnitOfWork_NotFoundInsideTransaction(t *testing.T) {
	src, _, tx := newFakes()
	uow := newUnitOfWork(src, nil, 0)

	err := uow.Execute(context.Background(), func(context.Context) error {
		return domainErrors.NewNotFoundError("Procedure", 5)
	})

	assert.True(t, domainErrors.IsNotFound(err))
	assert.Equal(t, 1, tx.rolledBack)
}

func TestUnitOfWork_AcquireFailure(t *testing.T) {
	src, conn, tx := newFakes()
	src.acquireErr = errors.New("pool closed")
	uow := newUnitOfWork(src, nil, 0)
	called := false

	err := uow.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})

	assert.True(t, domainErrors.IsInfrastructureError(err))
	assert.False(t, domainErrors.IsTransactionError(err))
	assert.False(t, called)
	assert.Zero(t, conn.released, "nothing was acquired, nothing to release")
	assert.Zero(t, tx.rolledBack)
}

func TestUnitOfWork_BeginFailureReleasesConnection(t *testing.T) {
	src, conn, _ := newFakes()
	conn.beginErr = errors.New("too many connections")
	uow := newUnitOfWork(src, nil, 0)

	err := uow.Execute(context.Background(), func(context.Context) error { return nil })

	assert.True(t, domainErrors.IsInfrastructureError(err))
	assert.Equal(t, 1, conn.released)
}

func TestUnitOfWork_CommitFailure(t *testing.T) {
	src, conn, tx := newFakes()
	tx.commitErr = errors.New("serialization failure")
	uow := newUnitOfWork(src, nil, 0)

	err := uow.Execute(context.Background(), func(context.Context) error { return nil })

	assert.True(t, domainErrors.IsTransactionError(err))
	assert.ErrorIs(t, err, tx.commitErr)
	assert.Equal(t, 1, conn.released)
}

func TestUnitOfWork_PanicRollsBackAndReleases(t *testing.T) {
	src, conn, tx := newFakes()
	uow := newUnitOfWork(src, nil, 0)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.Execute(context.Background(), func(context.Context) error { panic("boom") })
	})
	assert.Equal(t, 1, tx.rolledBack)
	assert.Equal(t, 1, conn.released)
}

func TestUnitOfWork_ClientCancelDoesNotAbort(t *testing.T) {
	src, _, tx := newFakes()
	uow := newUnitOfWork(src, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())

	err := uow.Execute(ctx, func(txCtx context.Context) error {
		cancel()
		return txCtx.Err()
	})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.committed)
}

func TestUnitOfWork_TimeoutStillRollsBack(t *testing.T) {
	src, _, tx := newFakes()
	uow := newUnitOfWork(src, nil, 10*time.Millisecond)

	err := uow.Execute(context.Background(), func(txCtx context.Context) error {
		<-txCtx.Done()
		return txCtx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, tx.rolledBack)
	assert.NoError(t, tx.rollbackCtxErr, "rollback must run on a live context")
}

func TestUnitOfWork_NestedReusesTransaction(t *testing.T) {
	src, _, tx := newFakes()
	uow := newUnitOfWork(src, nil, 0)

	err := uow.Execute(context.Background(), func(txCtx context.Context) error {
		return uow.Execute(txCtx, func(inner context.Context) error {
			assert.Equal(t, pgx.Tx(tx), extractTx(inner))
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, src.acquired)
	assert.Equal(t, 1, tx.committed)
}
