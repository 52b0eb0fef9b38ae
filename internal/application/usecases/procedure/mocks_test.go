package procedure_test

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/domain/entities"
	domainErrors "github.com/Haleralex/lasercare/internal/domain/errors"
)

// ============================================
// Mock Implementations (Test Doubles)
// ============================================

// MockProcedureRepository - mock ProcedureRepository. Calls пишет журнал
// вызовов, чтобы тесты проверяли порядок операций внутри транзакции.
type MockProcedureRepository struct {
	InsertFunc         func(ctx context.Context, p *entities.Procedure) (int64, error)
	AddZoneFunc        func(ctx context.Context, procedureID int64, zone entities.ProcedureZone) error
	UpdateHeaderFunc   func(ctx context.Context, p *entities.Procedure) (int64, error)
	DeleteZonesFunc    func(ctx context.Context, procedureID int64) (int64, error)
	InsertZoneRefsFunc func(ctx context.Context, procedureID int64, zoneIDs []int64) error
	DeleteHeaderFunc   func(ctx context.Context, procedureID int64) (int64, error)
	ListByPatientFunc  func(ctx context.Context, patientID int64) ([]entities.PatientProcedure, error)
	ListLinesFunc      func(ctx context.Context) ([]entities.ProcedureLine, error)

	Calls []string
}

func (m *MockProcedureRepository) Insert(ctx context.Context, p *entities.Procedure) (int64, error) {
	m.Calls = append(m.Calls, "Insert")
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	return 1, nil
}

func (m *MockProcedureRepository) AddZone(ctx context.Context, procedureID int64, zone entities.ProcedureZone) error {
	m.Calls = append(m.Calls, fmt.Sprintf("AddZone(%d,%d)", procedureID, zone.ZoneID()))
	if m.AddZoneFunc != nil {
		return m.AddZoneFunc(ctx, procedureID, zone)
	}
	return nil
}

func (m *MockProcedureRepository) UpdateHeader(ctx context.Context, p *entities.Procedure) (int64, error) {
	m.Calls = append(m.Calls, "UpdateHeader")
	if m.UpdateHeaderFunc != nil {
		return m.UpdateHeaderFunc(ctx, p)
	}
	return 1, nil
}

func (m *MockProcedureRepository) DeleteZones(ctx context.Context, procedureID int64) (int64, error) {
	m.Calls = append(m.Calls, "DeleteZones")
	if m.DeleteZonesFunc != nil {
		return m.DeleteZonesFunc(ctx, procedureID)
	}
	return 0, nil
}

func (m *MockProcedureRepository) InsertZoneRefs(ctx context.Context, procedureID int64, zoneIDs []int64) error {
	m.Calls = append(m.Calls, fmt.Sprintf("InsertZoneRefs%v", zoneIDs))
	if m.InsertZoneRefsFunc != nil {
		return m.InsertZoneRefsFunc(ctx, procedureID, zoneIDs)
	}
	return nil
}

func (m *MockProcedureRepository) DeleteHeader(ctx context.Context, procedureID int64) (int64, error) {
	m.Calls = append(m.Calls, "DeleteHeader")
	if m.DeleteHeaderFunc != nil {
		return m.DeleteHeaderFunc(ctx, procedureID)
	}
	return 1, nil
}

func (m *MockProcedureRepository) ListByPatient(ctx context.Context, patientID int64) ([]entities.PatientProcedure, error) {
	if m.ListByPatientFunc != nil {
		return m.ListByPatientFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockProcedureRepository) ListLines(ctx context.Context) ([]entities.ProcedureLine, error) {
	if m.ListLinesFunc != nil {
		return m.ListLinesFunc(ctx)
	}
	return nil, nil
}

// MockUnitOfWork ведёт себя как настоящий: ошибка fn превращается в
// TransactionError, а счётчики показывают, чем закончилась транзакция.
type MockUnitOfWork struct {
	ExecuteFunc func(ctx context.Context, fn func(context.Context) error) error

	Begun      int
	Committed  int
	RolledBack int
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) error {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, fn)
	}
	m.Begun++
	if err := fn(ctx); err != nil {
		m.RolledBack++
		return domainErrors.NewTransactionError("mock", err, nil)
	}
	m.Committed++
	return nil
}
