package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
)

// ErrorDetails выставляет флаг, по которому common.Error решает,
// отдавать ли клиенту поле details. Включается app.expose_error_details.
func ErrorDetails(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(common.ExposeDetailsKey, expose)
		c.Next()
	}
}
