// Package postgres - ProcedureRepository implementation.
package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
)

// Compile-time check: ProcedureRepository implements ports.ProcedureRepository
var _ ports.ProcedureRepository = (*ProcedureRepository)(nil)

// ProcedureRepository реализует ports.ProcedureRepository.
//
// Write-методы не открывают транзакций сами: атомарность обеспечивает
// UnitOfWork, который кладёт pgx.Tx в context.
type ProcedureRepository struct {
	pool *pgxpool.Pool
}

// NewProcedureRepository создаёт новый ProcedureRepository.
func NewProcedureRepository(pool *pgxpool.Pool) *ProcedureRepository {
	return &ProcedureRepository{pool: pool}
}

// ============================================
// Writes
// ============================================

// Insert вставляет заголовок процедуры и возвращает id_procedura.
func (r *ProcedureRepository) Insert(ctx context.Context, procedure *entities.Procedure) (int64, error) {
	query, args, err := psql.Insert("procedura").
		Columns("id_paciente", "data", "obshta_cena", "komentar").
		Values(procedure.PatientID(), procedure.Date(), procedure.TotalPrice(), procedure.Comment()).
		Suffix("RETURNING id_procedura").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	if err := getQuerier(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("patient %d does not exist: %w", procedure.PatientID(), err)
		}
		return 0, err
	}
	return id, nil
}

// AddZone вставляет одну строку procedura_zona с pulsaciones.
func (r *ProcedureRepository) AddZone(ctx context.Context, procedureID int64, zone entities.ProcedureZone) error {
	query, args, err := psql.Insert("procedura_zona").
		Columns("id_procedura", "id_zona", "pulsaciones").
		Values(procedureID, zone.ZoneID(), zone.Pulses()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := getQuerier(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return zoneInsertError(zone.ZoneID(), err)
	}
	return nil
}

// UpdateHeader обновляет data, obshta_cena и komentar. id_paciente не трогает.
func (r *ProcedureRepository) UpdateHeader(ctx context.Context, procedure *entities.Procedure) (int64, error) {
	query, args, err := psql.Update("procedura").
		Set("data", procedure.Date()).
		Set("obshta_cena", procedure.TotalPrice()).
		Set("komentar", procedure.Comment()).
		Where(squirrel.Eq{"id_procedura": procedure.ID()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := getQuerier(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteZones удаляет все зоны процедуры. Ноль строк - не ошибка.
func (r *ProcedureRepository) DeleteZones(ctx context.Context, procedureID int64) (int64, error) {
	query, args, err := psql.Delete("procedura_zona").
		Where(squirrel.Eq{"id_procedura": procedureID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := getQuerier(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertZoneRefs вставляет (id_procedura, id_zona) по одной строке на зону,
// pulsaciones остаются NULL.
func (r *ProcedureRepository) InsertZoneRefs(ctx context.Context, procedureID int64, zoneIDs []int64) error {
	q := getQuerier(ctx, r.pool)
	for i, zoneID := range zoneIDs {
		query, args, err := psql.Insert("procedura_zona").
			Columns("id_procedura", "id_zona").
			Values(procedureID, zoneID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("zone #%d: %w", i+1, zoneInsertError(zoneID, err))
		}
	}
	return nil
}

// DeleteHeader удаляет заголовок процедуры.
func (r *ProcedureRepository) DeleteHeader(ctx context.Context, procedureID int64) (int64, error) {
	query, args, err := psql.Delete("procedura").
		Where(squirrel.Eq{"id_procedura": procedureID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := getQuerier(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func zoneInsertError(zoneID int64, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("zone %d does not exist: %w", zoneID, err)
	}
	return err
}

// ============================================
// Reads
// ============================================

type patientProcedureRow struct {
	ID         int64           `db:"id_procedura"`
	Data       time.Time       `db:"data"`
	ObshtaCena decimal.Decimal `db:"obshta_cena"`
	Komentar   *string         `db:"komentar"`
	Zonas      []byte          `db:"zonas"`
}

// ListByPatient собирает процедуры пациента одним запросом: зоны
// агрегируются в JSON на стороне БД. Процедура без зон даёт пустой массив.
func (r *ProcedureRepository) ListByPatient(ctx context.Context, patientID int64) ([]entities.PatientProcedure, error) {
	query, args, err := psql.Select(
		"p.id_procedura",
		"p.data",
		"p.obshta_cena",
		"p.komentar",
		`COALESCE(
			json_agg(json_build_object('zona', z.nazvanie, 'pulsaciones', pz.pulsaciones))
				FILTER (WHERE z.id_zona IS NOT NULL),
			'[]'
		) AS zonas`,
	).
		From("procedura p").
		LeftJoin("procedura_zona pz ON pz.id_procedura = p.id_procedura").
		LeftJoin("zona_telo z ON z.id_zona = pz.id_zona").
		Where(squirrel.Eq{"p.id_paciente": patientID}).
		GroupBy("p.id_procedura").
		OrderBy("p.data DESC", "p.id_procedura DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []patientProcedureRow
	if err := pgxscan.Select(ctx, getQuerier(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, err
	}

	result := make([]entities.PatientProcedure, len(rows))
	for i, row := range rows {
		zones, err := normalizeZoneAggregate(row.Zonas)
		if err != nil {
			return nil, fmt.Errorf("procedure %d: %w", row.ID, err)
		}
		result[i] = entities.PatientProcedure{
			ID:         row.ID,
			Date:       row.Data,
			TotalPrice: row.ObshtaCena,
			Comment:    row.Komentar,
			Zones:      zones,
		}
	}
	return result, nil
}

type zoneDoseJSON struct {
	Zona        string `json:"zona"`
	Pulsaciones *int   `json:"pulsaciones"`
}

// normalizeZoneAggregate разбирает агрегат зон. Драйвер может вернуть его
// как JSON-массив или как JSON-строку, внутри которой лежит массив.
// NULL и пустое значение дают пустой список.
func normalizeZoneAggregate(raw []byte) ([]entities.ZoneDose, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []entities.ZoneDose{}, nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("invalid zone aggregate: %w", err)
		}
		return normalizeZoneAggregate([]byte(text))
	}

	var items []zoneDoseJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("invalid zone aggregate: %w", err)
	}

	zones := make([]entities.ZoneDose, len(items))
	for i, it := range items {
		zones[i] = entities.ZoneDose{ZoneName: it.Zona, Pulses: it.Pulsaciones}
	}
	return zones, nil
}

type procedureLineRow struct {
	IDProcedura    int64           `db:"id_procedura"`
	IDPaciente     int64           `db:"id_paciente"`
	NombrePaciente string          `db:"nombre_paciente"`
	Data           time.Time       `db:"data"`
	ObshtaCena     decimal.Decimal `db:"obshta_cena"`
	Zona           string          `db:"zona"`
}

// ListLines возвращает плоский список: одна строка на (процедура, зона).
// Повторы одной зоны внутри процедуры схлопываются.
func (r *ProcedureRepository) ListLines(ctx context.Context) ([]entities.ProcedureLine, error) {
	query, args, err := psql.Select(
		"p.id_procedura",
		"p.id_paciente",
		"pa.ime AS nombre_paciente",
		"p.data",
		"p.obshta_cena",
		"z.nazvanie AS zona",
	).
		From("procedura p").
		Join("paciente pa ON pa.id_paciente = p.id_paciente").
		Join("procedura_zona pz ON pz.id_procedura = p.id_procedura").
		Join("zona_telo z ON z.id_zona = pz.id_zona").
		GroupBy("p.id_procedura", "p.id_paciente", "pa.ime", "p.data", "p.obshta_cena", "z.nazvanie").
		OrderBy("p.data DESC", "p.id_procedura DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []procedureLineRow
	if err := pgxscan.Select(ctx, getQuerier(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, err
	}

	lines := make([]entities.ProcedureLine, len(rows))
	for i, row := range rows {
		lines[i] = entities.ProcedureLine{
			ProcedureID: row.IDProcedura,
			PatientID:   row.IDPaciente,
			PatientName: row.NombrePaciente,
			Date:        row.Data,
			TotalPrice:  row.ObshtaCena,
			ZoneName:    row.Zona,
		}
	}
	return lines, nil
}
