// Package handlers содержит HTTP handlers для REST API.
//
// Handler - это Adapter в терминах Clean Architecture:
// - Принимает HTTP запрос
// - Преобразует в Command/Query DTO
// - Вызывает Use Case
// - Преобразует результат в HTTP ответ
//
// Ключи тел запросов - snake_case (id_paciente, obshta_cena, id_zona),
// ключи ответов - camelCase. Фронтенд рассчитывает именно на это.
package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
	"github.com/Haleralex/lasercare/internal/domain/entities"
)

// ============================================
// Custom Validator Setup
// ============================================

var (
	setupOnce sync.Once
)

// SetupValidator настраивает кастомные валидаторы для Gin.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			// Используем json tag для имён полей в ошибках
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("iso_date", validateISODate)
		}
	})
}

// validateISODate проверяет дату процедуры (YYYY-MM-DD).
func validateISODate(fl validator.FieldLevel) bool {
	_, err := entities.ParseProcedureDate(fl.Field().String())
	return err == nil
}

// ============================================
// Validation Error Handling
// ============================================

// HandleValidationErrors преобразует ошибку биндинга в 400.
//
// Если не хватает только обязательных полей, отвечаем missingMessage:
// фронтенд показывает его как есть. Остальные ошибки валидации
// называют первое поле, а битый JSON даёт "Invalid request body".
func HandleValidationErrors(c *gin.Context, err error, missingMessage string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		common.Error(c, http.StatusBadRequest, common.MsgInvalidRequestBody, err.Error())
		return
	}

	details := make(map[string]string, len(validationErrors))
	onlyMissing := true
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = getValidationMessage(fieldErr)
		if fieldErr.Tag() != "required" {
			onlyMissing = false
		}
	}

	if onlyMissing && missingMessage != "" {
		common.Error(c, http.StatusBadRequest, missingMessage, details)
		return
	}

	first := validationErrors[0]
	common.Error(c, http.StatusBadRequest, "Invalid "+first.Field()+": "+getValidationMessage(first), details)
}

// getValidationMessage возвращает человекочитаемое сообщение об ошибке.
func getValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "iso_date":
		return "Invalid date format (use YYYY-MM-DD)"
	default:
		return "Invalid value"
	}
}

// ============================================
// Request Parsing Helpers
// ============================================

// BindJSON биндит JSON тело запроса.
// Возвращает true если успешно, false если была ошибка (ответ уже отправлен).
func BindJSON[T any](c *gin.Context, req *T, missingMessage string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrors(c, err, missingMessage)
		return false
	}
	return true
}

// idURI - числовой идентификатор из пути (/:id).
type idURI struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// BindID биндит :id. Любая ошибка отвечает 400 с invalidMessage
// ("Invalid patient ID", "Invalid procedure ID").
func BindID(c *gin.Context, invalidMessage string) (int64, bool) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		common.Error(c, http.StatusBadRequest, invalidMessage, err.Error())
		return 0, false
	}
	return uri.ID, true
}
