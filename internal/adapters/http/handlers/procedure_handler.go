package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
	"github.com/Haleralex/lasercare/internal/application/dtos"
)

// ============================================
// Use Case Interfaces
// ============================================

// CreateProcedureUseCase - интерфейс для создания процедуры с зонами.
type CreateProcedureUseCase interface {
	Execute(ctx context.Context, cmd dtos.CreateProcedureCommand) (*dtos.ProcedureSavedDTO, error)
}

// UpdateProcedureUseCase - интерфейс для замены процедуры и её зон.
type UpdateProcedureUseCase interface {
	Execute(ctx context.Context, cmd dtos.UpdateProcedureCommand) (*dtos.ProcedureSavedDTO, error)
}

// DeleteProcedureUseCase - интерфейс для удаления процедуры.
type DeleteProcedureUseCase interface {
	Execute(ctx context.Context, cmd dtos.DeleteProcedureCommand) (*dtos.ProcedureDeletedDTO, error)
}

// ListPatientProceduresUseCase - интерфейс для процедур пациента.
type ListPatientProceduresUseCase interface {
	Execute(ctx context.Context, query dtos.ListPatientProceduresQuery) ([]dtos.PatientProcedureDTO, error)
}

// ListProcedureLinesUseCase - интерфейс для плоского списка процедур.
type ListProcedureLinesUseCase interface {
	Execute(ctx context.Context) ([]dtos.ProcedureLineDTO, error)
}

// ============================================
// Procedure Handler
// ============================================

// ProcedureHandler обрабатывает запросы процедур.
//
// Запись (create/update/delete) целиком идёт через use case с UnitOfWork:
// handler только разбирает запрос и отображает ошибку на статус.
type ProcedureHandler struct {
	createProcedure CreateProcedureUseCase
	updateProcedure UpdateProcedureUseCase
	deleteProcedure DeleteProcedureUseCase
	listForPatient  ListPatientProceduresUseCase
	listLines       ListProcedureLinesUseCase
}

// NewProcedureHandler создаёт новый ProcedureHandler.
func NewProcedureHandler(
	createProcedure CreateProcedureUseCase,
	updateProcedure UpdateProcedureUseCase,
	deleteProcedure DeleteProcedureUseCase,
	listForPatient ListPatientProceduresUseCase,
	listLines ListProcedureLinesUseCase,
) *ProcedureHandler {
	return &ProcedureHandler{
		createProcedure: createProcedure,
		updateProcedure: updateProcedure,
		deleteProcedure: deleteProcedure,
		listForPatient:  listForPatient,
		listLines:       listLines,
	}
}

// ============================================
// Request DTOs (HTTP layer)
// ============================================

// ZoneRequest - элемент массива zonas.
//
// id_zona не помечен required: пропуск проверяет домен и называет
// позицию элемента (zonas[1].id_zona).
type ZoneRequest struct {
	IDZona      *int64          `json:"id_zona"`
	Pulsaciones dtos.PulseCount `json:"pulsaciones"`
}

// CreateProcedureRequest - тело POST /proceduras.
type CreateProcedureRequest struct {
	IDPaciente *int64        `json:"id_paciente" binding:"required,gt=0"`
	Data       string        `json:"data" binding:"required,iso_date"`
	ObshtaCena *dtos.Amount  `json:"obshta_cena" binding:"required"`
	Komentar   *string       `json:"komentar"`
	Zonas      []ZoneRequest `json:"zonas" binding:"required"`
}

// UpdateProcedureRequest - тело PUT /proceduras/:id. Пациент не меняется.
type UpdateProcedureRequest struct {
	Data       string        `json:"data" binding:"required,iso_date"`
	ObshtaCena *dtos.Amount  `json:"obshta_cena" binding:"required"`
	Komentar   *string       `json:"komentar"`
	Zonas      []ZoneRequest `json:"zonas" binding:"required"`
}

func toZoneEntries(zonas []ZoneRequest) []dtos.ZoneEntry {
	entries := make([]dtos.ZoneEntry, len(zonas))
	for i, z := range zonas {
		entries[i] = dtos.ZoneEntry{ZoneID: z.IDZona, Pulses: z.Pulsaciones.Value()}
	}
	return entries
}

// ============================================
// HTTP Handlers
// ============================================

// CreateProcedure создаёт процедуру и её зоны одной транзакцией.
//
// @Router /api/proceduras [post]
func (h *ProcedureHandler) CreateProcedure(c *gin.Context) {
	var req CreateProcedureRequest
	if !BindJSON(c, &req, common.MsgMissingProcedure) {
		return
	}

	result, err := h.createProcedure.Execute(c.Request.Context(), dtos.CreateProcedureCommand{
		PatientID:  *req.IDPaciente,
		Date:       req.Data,
		TotalPrice: req.ObshtaCena.Decimal,
		Comment:    req.Komentar,
		Zones:      toZoneEntries(req.Zonas),
	})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to create procedure")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateProcedure заменяет поля процедуры и весь набор зон.
//
// @Router /api/proceduras/{id} [put]
func (h *ProcedureHandler) UpdateProcedure(c *gin.Context) {
	id, ok := BindID(c, common.MsgInvalidProcedureID)
	if !ok {
		return
	}

	var req UpdateProcedureRequest
	if !BindJSON(c, &req, common.MsgMissingRevision) {
		return
	}

	result, err := h.updateProcedure.Execute(c.Request.Context(), dtos.UpdateProcedureCommand{
		ProcedureID: id,
		Date:        req.Data,
		TotalPrice:  req.ObshtaCena.Decimal,
		Comment:     req.Komentar,
		Zones:       toZoneEntries(req.Zonas),
	})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to update procedure")
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteProcedure удаляет процедуру вместе с зонами.
//
// @Router /api/proceduras/{id} [delete]
func (h *ProcedureHandler) DeleteProcedure(c *gin.Context) {
	id, ok := BindID(c, common.MsgInvalidProcedureID)
	if !ok {
		return
	}

	result, err := h.deleteProcedure.Execute(c.Request.Context(), dtos.DeleteProcedureCommand{ProcedureID: id})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to delete procedure")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPatientProcedures возвращает процедуры пациента с зонами.
//
// @Router /api/pacientes/{id}/proceduras [get]
func (h *ProcedureHandler) ListPatientProcedures(c *gin.Context) {
	id, ok := BindID(c, common.MsgInvalidPatientID)
	if !ok {
		return
	}

	result, err := h.listForPatient.Execute(c.Request.Context(), dtos.ListPatientProceduresQuery{PatientID: id})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to fetch procedures")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListProcedures возвращает все процедуры, по строке на зону.
//
// @Router /api/proceduras [get]
func (h *ProcedureHandler) ListProcedures(c *gin.Context) {
	result, err := h.listLines.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err, "Failed to fetch procedures")
		return
	}

	c.JSON(http.StatusOK, result)
}
