package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
	"github.com/Haleralex/lasercare/internal/application/dtos"
)

// ============================================
// Use Case Interfaces
// ============================================

// ListPatientsUseCase - интерфейс для списка пациентов.
type ListPatientsUseCase interface {
	Execute(ctx context.Context) ([]dtos.PatientDTO, error)
}

// GetPatientUseCase - интерфейс для получения пациента.
type GetPatientUseCase interface {
	Execute(ctx context.Context, query dtos.GetPatientQuery) (*dtos.PatientDTO, error)
}

// CreatePatientUseCase - интерфейс для создания пациента.
type CreatePatientUseCase interface {
	Execute(ctx context.Context, cmd dtos.CreatePatientCommand) (*dtos.PatientCreatedDTO, error)
}

// UpdatePatientUseCase - интерфейс для обновления пациента.
type UpdatePatientUseCase interface {
	Execute(ctx context.Context, cmd dtos.UpdatePatientCommand) (*dtos.PatientChangedDTO, error)
}

// DeletePatientUseCase - интерфейс для удаления пациента.
type DeletePatientUseCase interface {
	Execute(ctx context.Context, cmd dtos.DeletePatientCommand) (*dtos.PatientChangedDTO, error)
}

// ============================================
// Patient Handler
// ============================================

// PatientHandler обрабатывает CRUD запросы картотеки пациентов.
type PatientHandler struct {
	listPatients  ListPatientsUseCase
	getPatient    GetPatientUseCase
	createPatient CreatePatientUseCase
	updatePatient UpdatePatientUseCase
	deletePatient DeletePatientUseCase
}

// NewPatientHandler создаёт новый PatientHandler.
func NewPatientHandler(
	listPatients ListPatientsUseCase,
	getPatient GetPatientUseCase,
	createPatient CreatePatientUseCase,
	updatePatient UpdatePatientUseCase,
	deletePatient DeletePatientUseCase,
) *PatientHandler {
	return &PatientHandler{
		listPatients:  listPatients,
		getPatient:    getPatient,
		createPatient: createPatient,
		updatePatient: updatePatient,
		deletePatient: deletePatient,
	}
}

// ============================================
// Request DTOs (HTTP layer)
// ============================================

// PatientRequest - тело POST/PUT /pacientes.
//
// ime проверяется доменом, чтобы ответ был ровно "Ime is required".
type PatientRequest struct {
	Ime     string       `json:"ime"`
	Pol     *string      `json:"pol"`
	Telefon *string      `json:"telefon"`
	Email   *string      `json:"email"`
	Balans  *dtos.Amount `json:"balans"`
}

func (r PatientRequest) balance() *decimal.Decimal {
	if r.Balans == nil {
		return nil
	}
	d := r.Balans.Decimal
	return &d
}

// ============================================
// HTTP Handlers
// ============================================

// ListPatients возвращает всех пациентов.
//
// @Router /api/pacientes [get]
func (h *PatientHandler) ListPatients(c *gin.Context) {
	result, err := h.listPatients.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err, "Failed to fetch patients")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPatient возвращает пациента по id.
//
// @Router /api/pacientes/{id} [get]
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, ok := BindID(c, common.MsgInvalidPatientID)
	if !ok {
		return
	}

	result, err := h.getPatient.Execute(c.Request.Context(), dtos.GetPatientQuery{PatientID: id})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to fetch patient")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreatePatient создаёт пациента.
//
// @Router /api/pacientes [post]
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !BindJSON(c, &req, common.MsgPatientNameRequired) {
		return
	}

	result, err := h.createPatient.Execute(c.Request.Context(), dtos.CreatePatientCommand{
		Name:    req.Ime,
		Sex:     req.Pol,
		Phone:   req.Telefon,
		Email:   req.Email,
		Balance: req.balance(),
	})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to create patient")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdatePatient обновляет пациента. balans меняется только если передан.
//
// @Router /api/pacientes/{id} [put]
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := BindID(c, common.MsgInvalidPatientID)
	if !ok {
		return
	}

	var req PatientRequest
	if !BindJSON(c, &req, common.MsgPatientNameRequired) {
		return
	}

	result, err := h.updatePatient.Execute(c.Request.Context(), dtos.UpdatePatientCommand{
		PatientID: id,
		Name:      req.Ime,
		Sex:       req.Pol,
		Phone:     req.Telefon,
		Email:     req.Email,
		Balance:   req.balance(),
	})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to update patient")
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePatient удаляет пациента.
//
// @Router /api/pacientes/{id} [delete]
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := BindID(c, common.MsgInvalidPatientID)
	if !ok {
		return
	}

	result, err := h.deletePatient.Execute(c.Request.Context(), dtos.DeletePatientCommand{PatientID: id})
	if err != nil {
		common.HandleDomainError(c, err, "Failed to delete patient")
		return
	}

	c.JSON(http.StatusOK, result)
}
