package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
)

var _ ports.ZoneRepository = (*ZoneRepository)(nil)

type zoneRow struct {
	ID             int64   `db:"id_zona"`
	Nazvanie       string  `db:"nazvanie"`
	NazvanieEs     *string `db:"nazvanie_es"`
	PolSpecifichen bool    `db:"pol_specifichen"`
}

// ZoneRepository читает справочник zona_telo.
type ZoneRepository struct {
	pool *pgxpool.Pool
}

// NewZoneRepository создаёт новый ZoneRepository.
func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

// List возвращает все зоны по возрастанию id_zona.
func (r *ZoneRepository) List(ctx context.Context) ([]*entities.Zone, error) {
	query, args, err := psql.Select("id_zona", "nazvanie", "nazvanie_es", "pol_specifichen").
		From("zona_telo").
		OrderBy("id_zona").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []zoneRow
	if err := pgxscan.Select(ctx, getQuerier(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	zones := make([]*entities.Zone, len(rows))
	for i, row := range rows {
		zones[i] = entities.ReconstructZone(row.ID, row.Nazvanie, row.NazvanieEs, row.PolSpecifichen)
	}
	return zones, nil
}
