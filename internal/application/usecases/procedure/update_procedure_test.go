package procedure_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/usecases/procedure"
	"github.com/Haleralex/lasercare/internal/domain/entities"
	domainErrors "github.com/Haleralex/lasercare/internal/domain/errors"
)

func TestUpdateProcedureUseCase_ReplacesZones(t *testing.T) {
	var header *entities.Procedure
	repo := &MockProcedureRepository{
		UpdateHeaderFunc: func(ctx context.Context, p *entities.Procedure) (int64, error) {
			header = p
			return 1, nil
		},
		DeleteZonesFunc: func(ctx context.Context, id int64) (int64, error) { return 2, nil },
	}
	uow := &MockUnitOfWork{}
	uc := procedure.NewUpdateProcedureUseCase(repo, uow)

	result, err := uc.Execute(context.Background(), dtos.UpdateProcedureCommand{
		ProcedureID: 12,
		Date:        "2024-06-01",
		TotalPrice:  decimal.RequireFromString("90"),
		Zones: []dtos.ZoneEntry{
			{ZoneID: int64Ptr(4), Pulses: intPtr(300)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.IDProcedura)
	assert.Equal(t, dtos.MsgProcedureUpdated, result.Message)
	assert.Equal(t, []string{"UpdateHeader", "DeleteZones", "InsertZoneRefs[4]"}, repo.Calls)
	assert.Equal(t, 1, uow.Committed)
	require.NotNil(t, header)
	assert.Equal(t, int64(12), header.ID())
	assert.Nil(t, header.Comment())
}

func TestUpdateProcedureUseCase_EmptyZonesClearsSet(t *testing.T) {
	repo := &MockProcedureRepository{}
	uc := procedure.NewUpdateProcedureUseCase(repo, &MockUnitOfWork{})

	_, err := uc.Execute(context.Background(), dtos.UpdateProcedureCommand{
		ProcedureID: 3,
		Date:        "2024-06-01",
		Zones:       []dtos.ZoneEntry{},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"UpdateHeader", "DeleteZones", "InsertZoneRefs[]"}, repo.Calls)
}

func TestUpdateProcedureUseCase_NotFoundRollsBack(t *testing.T) {
	repo := &MockProcedureRepository{
		UpdateHeaderFunc: func(ctx context.Context, p *entities.Procedure) (int64, error) { return 0, nil },
	}
	uow := &MockUnitOfWork{}
	uc := procedure.NewUpdateProcedureUseCase(repo, uow)

	_, err := uc.Execute(context.Background(), dtos.UpdateProcedureCommand{
		ProcedureID: 404,
		Date:        "2024-06-01",
		Zones:       []dtos.ZoneEntry{{ZoneID: int64Ptr(2)}},
	})

	require.Error(t, err)
	assert.True(t, domainErrors.IsNotFound(err))
	nf, ok := domainErrors.AsNotFound(err)
	require.True(t, ok)
	assert.Equal(t, "Procedure", nf.Resource)
	assert.Equal(t, []string{"UpdateHeader"}, repo.Calls)
	assert.Equal(t, 1, uow.RolledBack)
}

func TestUpdateProcedureUseCase_ZoneInsertFailure(t *testing.T) {
	fkErr := errors.New("zona fk")
	repo := &MockProcedureRepository{
		InsertZoneRefsFunc: func(ctx context.Context, id int64, ids []int64) error { return fkErr },
	}
	uow := &MockUnitOfWork{}
	uc := procedure.NewUpdateProcedureUseCase(repo, uow)

	_, err := uc.Execute(context.Background(), dtos.UpdateProcedureCommand{
		ProcedureID: 1,
		Date:        "2024-06-01",
		Zones:       []dtos.ZoneEntry{{ZoneID: int64Ptr(99999)}},
	})

	assert.ErrorIs(t, err, fkErr)
	assert.Equal(t, 1, uow.RolledBack)
	assert.Zero(t, uow.Committed)
}

func TestUpdateProcedureUseCase_Validation(t *testing.T) {
	repo := &MockProcedureRepository{}
	uow := &MockUnitOfWork{}
	uc := procedure.NewUpdateProcedureUseCase(repo, uow)

	_, err := uc.Execute(context.Background(), dtos.UpdateProcedureCommand{
		ProcedureID: 0,
		Date:        "2024-13-45",
		Zones:       []dtos.ZoneEntry{{Pulses: intPtr(1)}},
	})

	require.Error(t, err)
	assert.True(t, domainErrors.IsValidationError(err))
	assert.Zero(t, uow.Begun)
	assert.Empty(t, repo.Calls)
}
