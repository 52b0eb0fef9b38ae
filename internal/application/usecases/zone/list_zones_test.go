package zone_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/lasercare/internal/application/usecases/zone"
	"github.com/Haleralex/lasercare/internal/domain/entities"
)

type MockZoneRepository struct {
	ListFunc func(ctx context.Context) ([]*entities.Zone, error)
}

func (m *MockZoneRepository) List(ctx context.Context) ([]*entities.Zone, error) {
	return m.ListFunc(ctx)
}

func TestListZonesUseCase(t *testing.T) {
	es := "Axilas"
	uc := zone.NewListZonesUseCase(&MockZoneRepository{
		ListFunc: func(ctx context.Context) ([]*entities.Zone, error) {
			return []*entities.Zone{entities.ReconstructZone(2, "Подмишници", &es, false)}, nil
		},
	})

	zones, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, int64(2), zones[0].IDZona)
	assert.Equal(t, "Axilas", *zones[0].NazvanieEs)
}

func TestListZonesUseCase_Error(t *testing.T) {
	boom := errors.New("boom")
	uc := zone.NewListZonesUseCase(&MockZoneRepository{
		ListFunc: func(ctx context.Context) ([]*entities.Zone, error) { return nil, boom },
	})

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, boom)
}
