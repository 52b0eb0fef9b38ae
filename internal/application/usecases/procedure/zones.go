// Package procedure содержит use cases агрегата Procedure.
//
// Create/Update/Delete - это aggregate write: заголовок procedura и строки
// procedura_zona пишутся в одной транзакции через ports.UnitOfWork.
// Вся валидация выполняется до Execute, поэтому при ошибке ввода
// соединение из пула не берётся вообще.
package procedure

import (
	"fmt"

	"github.com/Haleralex/lasercare/internal/application/dtos"
	"github.com/Haleralex/lasercare/internal/domain/entities"
	"github.com/Haleralex/lasercare/internal/domain/errors"
)

// buildZones превращает zone entries команды в domain ProcedureZone,
// собирая все ошибки в errs.
func buildZones(entries []dtos.ZoneEntry, errs *errors.ValidationErrors) []entities.ProcedureZone {
	zones := make([]entities.ProcedureZone, 0, len(entries))
	for i, e := range entries {
		z, err := entities.NewProcedureZone(e.ZoneID, e.Pulses)
		if err != nil {
			errs.Add(fmt.Sprintf("zonas[%d].id_zona", i), errors.ErrZoneIDRequired.Error())
			continue
		}
		zones = append(zones, z)
	}
	return zones
}

// mergeValidation добавляет ошибки entity-конструктора к уже собранным.
func mergeValidation(errs errors.ValidationErrors, err error) error {
	if entityErrs, ok := err.(errors.ValidationErrors); ok {
		errs = append(errs, entityErrs...)
	} else if err != nil {
		return err
	}
	return errs.OrNil()
}
