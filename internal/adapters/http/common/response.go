// Package common содержит общие типы для HTTP слоя.
//
// Вынесен в отдельный пакет чтобы избежать циклических импортов
// между handlers и middleware.
package common

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/Haleralex/lasercare/internal/domain/errors"
)

// ============================================
// Error Response Format
// ============================================

// ErrorResponse - формат ошибки, который ожидает фронтенд.
//
// Details заполняется только когда включён app.expose_error_details,
// чтобы текст ошибок БД не уходил клиенту в production.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse - ответ с одним сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================
// Messages
// ============================================

const (
	MsgEndpointNotFound    = "Endpoint not found"
	MsgInternalError       = "Internal server error"
	MsgInvalidPatientID    = "Invalid patient ID"
	MsgInvalidProcedureID  = "Invalid procedure ID"
	MsgPatientNameRequired = "Ime is required"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgValidationFailed    = "Validation failed"
	MsgMissingProcedure    = "Missing required fields. Required: id_paciente, data, obshta_cena, and zonas array"
	MsgMissingRevision     = "Missing required fields. Required: data, obshta_cena, and zonas array"
)

// ============================================
// Context keys
// ============================================

const (
	// RequestIDKey - ключ для хранения request ID в контексте.
	RequestIDKey = "X-Request-ID"

	// ExposeDetailsKey - флаг в gin.Context, выставляемый middleware.ErrorDetails.
	ExposeDetailsKey = "lasercare.expose_error_details"
)

// GetRequestID извлекает request ID из контекста.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// SetRequestID устанавливает request ID в контекст.
func SetRequestID(c *gin.Context, id string) {
	c.Set(RequestIDKey, id)
	c.Header(RequestIDKey, id)
}

// ExposeDetails сообщает, можно ли отдавать клиенту детали ошибок.
func ExposeDetails(c *gin.Context) bool {
	return c.GetBool(ExposeDetailsKey)
}

// ============================================
// Response Helpers
// ============================================

// Error отправляет ошибку. details добавляется только если разрешено.
func Error(c *gin.Context, statusCode int, message string, details any) {
	resp := ErrorResponse{Error: message}
	if details != nil && ExposeDetails(c) {
		resp.Details = details
	}
	c.AbortWithStatusJSON(statusCode, resp)
}

// BadRequest отправляет 400.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, nil)
}

// NotFound отправляет 404 "<Resource> not found".
func NotFound(c *gin.Context, resource string) {
	Error(c, http.StatusNotFound, resource+" not found", nil)
}

// InternalError отправляет 500; текст err попадает в details.
func InternalError(c *gin.Context, message string, err error) {
	var details any
	if err != nil {
		details = err.Error()
	}
	Error(c, http.StatusInternalServerError, message, details)
}

// ============================================
// Domain Error Handling
// ============================================

// HandleDomainError конвертирует ошибку use case в HTTP ответ.
//
// Маппинг:
//   - ValidationError(s) -> 400
//   - NotFoundError -> 404 "<Resource> not found"
//   - всё остальное (TransactionError, InfrastructureError, pg ошибки) -> 500
//
// failureMessage - текст 500-го ответа, например "Failed to create procedure".
func HandleDomainError(c *gin.Context, err error, failureMessage string) {
	if err == nil {
		return
	}

	if fields, ok := validationFields(err); ok {
		Error(c, http.StatusBadRequest, validationMessage(fields), fieldDetails(fields))
		return
	}

	if nf, ok := domainerrors.AsNotFound(err); ok {
		NotFound(c, nf.Resource)
		return
	}

	slog.ErrorContext(c.Request.Context(), failureMessage,
		slog.String("error", err.Error()),
		slog.String("path", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
	)
	InternalError(c, failureMessage, err)
}

// validationFields достаёт ошибки полей из одиночной или составной ValidationError.
func validationFields(err error) ([]domainerrors.ValidationError, bool) {
	var many domainerrors.ValidationErrors
	if errors.As(err, &many) {
		return many, len(many) > 0
	}
	var one domainerrors.ValidationError
	if errors.As(err, &one) {
		return []domainerrors.ValidationError{one}, true
	}
	return nil, false
}

// validationMessage выбирает текст 400-го ответа.
// Для известных полей текст фиксирован, так его показывает фронтенд.
func validationMessage(fields []domainerrors.ValidationError) string {
	if len(fields) == 1 {
		if fields[0].Field == "ime" {
			return MsgPatientNameRequired
		}
		return "Invalid " + fields[0].Field + ": " + fields[0].Message
	}
	return MsgValidationFailed
}

func fieldDetails(fields []domainerrors.ValidationError) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Message
	}
	return out
}
