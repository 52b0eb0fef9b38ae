// Package zone содержит use cases справочника зон.
package zone

import (
	"context"
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/application/ports"
)

// ListZonesUseCase возвращает справочник зон.
type ListZonesUseCase struct {
	zones ports.ZoneRepository
}

// NewListZonesUseCase создаёт use case.
func NewListZonesUseCase(zones ports.ZoneRepository) *ListZonesUseCase {
	return &ListZonesUseCase{zones: zones}
}

// Execute выполняет use case.
func (uc *ListZonesUseCase) Execute(ctx context.Context) ([]dtos.ZoneDTO, error) {
	zones, err := uc.zones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	return dtos.ToZoneDTOList(zones), nil
}
