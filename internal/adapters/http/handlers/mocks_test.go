package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
	"github.com/Haleralex/lasercare/internal/application/dtos"
)

func init() {
	SetupValidator()
}

// ============================================
// Mock Use Cases
// ============================================

type MockListPatientsUseCase struct {
	ExecuteFn func(ctx context.Context) ([]dtos.PatientDTO, error)
}

func (m *MockListPatientsUseCase) Execute(ctx context.Context) ([]dtos.PatientDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx)
	}
	return nil, errors.New("not implemented")
}

type MockGetPatientUseCase struct {
	ExecuteFn func(ctx context.Context, query dtos.GetPatientQuery) (*dtos.PatientDTO, error)
}

func (m *MockGetPatientUseCase) Execute(ctx context.Context, query dtos.GetPatientQuery) (*dtos.PatientDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, query)
	}
	return nil, errors.New("not implemented")
}

type MockCreatePatientUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.CreatePatientCommand) (*dtos.PatientCreatedDTO, error)
}

func (m *MockCreatePatientUseCase) Execute(ctx context.Context, cmd dtos.CreatePatientCommand) (*dtos.PatientCreatedDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

type MockUpdatePatientUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.UpdatePatientCommand) (*dtos.PatientChangedDTO, error)
}

func (m *MockUpdatePatientUseCase) Execute(ctx context.Context, cmd dtos.UpdatePatientCommand) (*dtos.PatientChangedDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

type MockDeletePatientUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.DeletePatientCommand) (*dtos.PatientChangedDTO, error)
}

func (m *MockDeletePatientUseCase) Execute(ctx context.Context, cmd dtos.DeletePatientCommand) (*dtos.PatientChangedDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

type MockListZonesUseCase struct {
	ExecuteFn func(ctx context.Context) ([]dtos.ZoneDTO, error)
}

func (m *MockListZonesUseCase) Execute(ctx context.Context) ([]dtos.ZoneDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx)
	}
	return nil, errors.New("not implemented")
}

type MockCreateProcedureUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.CreateProcedureCommand) (*dtos.ProcedureSavedDTO, error)
}

func (m *MockCreateProcedureUseCase) Execute(ctx context.Context, cmd dtos.CreateProcedureCommand) (*dtos.ProcedureSavedDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

type MockUpdateProcedureUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.UpdateProcedureCommand) (*dtos.ProcedureSavedDTO, error)
}

func (m *MockUpdateProcedureUseCase) Execute(ctx context.Context, cmd dtos.UpdateProcedureCommand) (*dtos.ProcedureSavedDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

type MockDeleteProcedureUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.DeleteProcedureCommand) (*dtos.ProcedureDeletedDTO, error)
}

func (m *MockDeleteProcedureUseCase) Execute(ctx context.Context, cmd dtos.DeleteProcedureCommand) (*dtos.ProcedureDeletedDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

type MockListPatientProceduresUseCase struct {
	ExecuteFn func(ctx context.Context, query dtos.ListPatientProceduresQuery) ([]dtos.PatientProcedureDTO, error)
}

func (m *MockListPatientProceduresUseCase) Execute(ctx context.Context, query dtos.ListPatientProceduresQuery) ([]dtos.PatientProcedureDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, query)
	}
	return nil, errors.New("not implemented")
}

type MockListProcedureLinesUseCase struct {
	ExecuteFn func(ctx context.Context) ([]dtos.ProcedureLineDTO, error)
}

func (m *MockListProcedureLinesUseCase) Execute(ctx context.Context) ([]dtos.ProcedureLineDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx)
	}
	return nil, errors.New("not implemented")
}

// ============================================
// Test Helpers
// ============================================

// newTestRouter создаёт gin engine с флагом details, как его ставит middleware.
func newTestRouter(exposeDetails bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(common.RequestIDKey, "test-request-123")
		c.Set(common.ExposeDetailsKey, exposeDetails)
		c.Next()
	})
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ptr[T any](v T) *T { return &v }

