// Package ports определяет интерфейсы (порты) для внешних зависимостей.
// Эти интерфейсы реализуются в Infrastructure Layer.
//
// Pattern: Repository Pattern + Ports & Adapters (Hexagonal Architecture)
package ports

import (
	"context"

	"github.com/Haleralex/lasercare/internal/domain/entities"
)

// PatientRepository определяет контракт для хранения пациентов.
//
// Все мутации возвращают количество затронутых строк, чтобы use case
// мог отличить "не найдено" от успешной операции.
type PatientRepository interface {
	// List возвращает всех пациентов, упорядоченных по id.
	List(ctx context.Context) ([]*entities.Patient, error)

	// FindByID загружает пациента. Возвращает NotFoundError если его нет.
	FindByID(ctx context.Context, id int64) (*entities.Patient, error)

	// Create вставляет пациента и присваивает ему сгенерированный id.
	Create(ctx context.Context, patient *entities.Patient) error

	// Update перезаписывает ime, pol, telefon, email пациента id.
	// balans меняется только при withBalance == true.
	Update(ctx context.Context, id int64, patient *entities.Patient, withBalance bool) (int64, error)

	// Delete удаляет пациента.
	Delete(ctx context.Context, id int64) (int64, error)
}

// ZoneRepository - только чтение справочника зон.
type ZoneRepository interface {
	List(ctx context.Context) ([]*entities.Zone, error)
}

// ProcedureRepository определяет контракт для агрегата Procedure.
//
// Write-методы рассчитаны на вызов внутри UnitOfWork: заголовок и
// строки procedura_zona пишутся одной транзакцией.
type ProcedureRepository interface {
	// Insert вставляет заголовок и возвращает сгенерированный id_procedura
	// тем же запросом (RETURNING).
	Insert(ctx context.Context, procedure *entities.Procedure) (int64, error)

	// AddZone вставляет одну строку procedura_zona вместе с pulsaciones.
	AddZone(ctx context.Context, procedureID int64, zone entities.ProcedureZone) error

	// UpdateHeader обновляет дату, цену и комментарий. Возвращает rows affected.
	UpdateHeader(ctx context.Context, procedure *entities.Procedure) (int64, error)

	// DeleteZones удаляет все строки procedura_zona процедуры.
	DeleteZones(ctx context.Context, procedureID int64) (int64, error)

	// InsertZoneRefs вставляет строки (id_procedura, id_zona) без pulsaciones,
	// по одной на элемент, в заданном порядке, останавливаясь на первой ошибке.
	InsertZoneRefs(ctx context.Context, procedureID int64, zoneIDs []int64) error

	// DeleteHeader удаляет заголовок. Возвращает rows affected.
	DeleteHeader(ctx context.Context, procedureID int64) (int64, error)

	// ListByPatient - aggregation reader: процедуры пациента с зонами,
	// собранными json_agg на стороне БД, по дате DESC.
	ListByPatient(ctx context.Context, patientID int64) ([]entities.PatientProcedure, error)

	// ListLines - плоский список: одна строка на пару (процедура, зона).
	ListLines(ctx context.Context) ([]entities.ProcedureLine, error)
}
