// Package postgres - PatientRepository implementation.
package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/domain/entities"
	domainErrors "github.com/Haleralex/lasercare/internal/domain/errors"
)

// Compile-time check: PatientRepository implements ports.PatientRepository
var _ ports.PatientRepository = (*PatientRepository)(nil)

var patientColumns = []string{"id_paciente", "ime", "pol", "telefon", "email", "balans"}

// patientRow - строка таблицы paciente.
type patientRow struct {
	ID      int64           `db:"id_paciente"`
	Ime     string          `db:"ime"`
	Pol     *string         `db:"pol"`
	Telefon *string         `db:"telefon"`
	Email   *string         `db:"email"`
	Balans  decimal.Decimal `db:"balans"`
}

func (r patientRow) toEntity() *entities.Patient {
	return entities.ReconstructPatient(r.ID, r.Ime, r.Pol, r.Telefon, r.Email, r.Balans)
}

// PatientRepository реализует ports.PatientRepository.
//
// Все операции - одиночные выражения; транзакция из context используется,
// если она есть.
type PatientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository создаёт новый PatientRepository.
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

// List возвращает всех пациентов по возрастанию id.
func (r *PatientRepository) List(ctx context.Context) ([]*entities.Patient, error) {
	query, args, err := psql.Select(patientColumns...).
		From("paciente").
		OrderBy("id_paciente").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []patientRow
	if err := pgxscan.Select(ctx, getQuerier(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	patients := make([]*entities.Patient, len(rows))
	for i, row := range rows {
		patients[i] = row.toEntity()
	}
	return patients, nil
}

// FindByID загружает пациента по id.
func (r *PatientRepository) FindByID(ctx context.Context, id int64) (*entities.Patient, error) {
	query, args, err := psql.Select(patientColumns...).
		From("paciente").
		Where(squirrel.Eq{"id_paciente": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row patientRow
	if err := pgxscan.Get(ctx, getQuerier(ctx, r.pool), &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domainErrors.NewNotFoundError("Patient", id)
		}
		return nil, fmt.Errorf("failed to find patient %d: %w", id, err)
	}
	return row.toEntity(), nil
}

// Create вставляет пациента и присваивает ему id_paciente.
func (r *PatientRepository) Create(ctx context.Context, patient *entities.Patient) error {
	query, args, err := psql.Insert("paciente").
		Columns("ime", "pol", "telefon", "email", "balans").
		Values(patient.Name(), patient.Sex(), patient.Phone(), patient.Email(), patient.Balance()).
		Suffix("RETURNING id_paciente").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	if err := getQuerier(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to insert patient: %w", err)
	}
	patient.AssignID(id)
	return nil
}

// Update перезаписывает поля пациента; balans только при withBalance.
func (r *PatientRepository) Update(ctx context.Context, id int64, patient *entities.Patient, withBalance bool) (int64, error) {
	builder := psql.Update("paciente").
		Set("ime", patient.Name()).
		Set("pol", patient.Sex()).
		Set("telefon", patient.Phone()).
		Set("email", patient.Email())
	if withBalance {
		builder = builder.Set("balans", patient.Balance())
	}

	query, args, err := builder.Where(squirrel.Eq{"id_paciente": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := getQuerier(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update patient %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// Delete удаляет пациента. Пациент с процедурами не удаляется (FK).
func (r *PatientRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := psql.Delete("paciente").
		Where(squirrel.Eq{"id_paciente": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := getQuerier(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("patient %d still has procedures: %w", id, err)
		}
		return 0, fmt.Errorf("failed to delete patient %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
