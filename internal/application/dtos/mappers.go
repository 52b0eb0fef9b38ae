// Package dtos - Mappers для конвертации domain entities в DTOs.
package dtos

import (
	"github.com/Haleralex/lasercare/internal/domain/entities"
)

// ============================================
// Patient Mappers
// ============================================

// ToPatientDTO конвертирует Patient в DTO.
func ToPatientDTO(p *entities.Patient) PatientDTO {
	return PatientDTO{
		ID:      p.ID(),
		Ime:     p.Name(),
		Pol:     p.Sex(),
		Telefon: p.Phone(),
		Email:   p.Email(),
		Balans:  NewAmount(p.Balance()),
	}
}

// ToPatientDTOList конвертирует список пациентов. Никогда не возвращает nil,
// чтобы пустой список сериализовался как [].
func ToPatientDTOList(patients []*entities.Patient) []PatientDTO {
	result := make([]PatientDTO, len(patients))
	for i, p := range patients {
		result[i] = ToPatientDTO(p)
	}
	return result
}

// ============================================
// Zone Mappers
// ============================================

// ToZoneDTOList конвертирует справочник зон.
func ToZoneDTOList(zones []*entities.Zone) []ZoneDTO {
	result := make([]ZoneDTO, len(zones))
	for i, z := range zones {
		result[i] = ZoneDTO{
			IDZona:         z.ID(),
			Nazvanie:       z.Name(),
			NazvanieEs:     z.LocalizedName(),
			PolSpecifichen: z.SexSpecific(),
		}
	}
	return result
}

// ============================================
// Procedure Mappers
// ============================================

// ToPatientProcedureDTO конвертирует read model процедуры пациента.
func ToPatientProcedureDTO(p entities.PatientProcedure) PatientProcedureDTO {
	zonas := make([]ZoneDoseDTO, len(p.Zones))
	for i, z := range p.Zones {
		zonas[i] = ZoneDoseDTO{Zona: z.ZoneName, Pulsaciones: z.Pulses}
	}
	return PatientProcedureDTO{
		IDProcedura: p.ID,
		Data:        NewDate(p.Date),
		ObshtaCena:  NewAmount(p.TotalPrice),
		Komentar:    p.Comment,
		Zonas:       zonas,
	}
}

// ToPatientProcedureDTOList конвертирует список процедур пациента.
func ToPatientProcedureDTOList(items []entities.PatientProcedure) []PatientProcedureDTO {
	result := make([]PatientProcedureDTO, len(items))
	for i, p := range items {
		result[i] = ToPatientProcedureDTO(p)
	}
	return result
}

// ToProcedureLineDTOList конвертирует плоский список процедур.
func ToProcedureLineDTOList(lines []entities.ProcedureLine) []ProcedureLineDTO {
	result := make([]ProcedureLineDTO, len(lines))
	for i, l := range lines {
		result[i] = ProcedureLineDTO{
			IDProcedura:    l.ProcedureID,
			IDPaciente:     l.PatientID,
			NombrePaciente: l.PatientName,
			Data:           NewDate(l.Date),
			ObshtaCena:     NewAmount(l.TotalPrice),
			Zona:           l.ZoneName,
		}
	}
	return result
}
