package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/lasercare/internal/infrastructure/persistence/postgres"
)

// ============================================
// Health Check Handler
// ============================================

// DatabaseProbe - то, что health handler знает о БД.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Stats() postgres.PoolStats
}

// HealthHandler обрабатывает health check запросы.
//
// Два типа проверок:
// - Liveness: процесс жив? (если нет - restart)
// - Readiness: БД доступна? (если нет - трафик не направляется)
type HealthHandler struct {
	db        DatabaseProbe
	version   string
	startTime time.Time
}

// NewHealthHandler создаёт новый HealthHandler. db может быть nil.
func NewHealthHandler(db DatabaseProbe, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// ============================================
// Response Types
// ============================================

// HealthResponse - ответ health check.
type HealthResponse struct {
	Status    string              `json:"status"` // "healthy", "unhealthy"
	Version   string              `json:"version"`
	Uptime    string              `json:"uptime"`
	Timestamp time.Time           `json:"timestamp"`
	Checks    map[string]string   `json:"checks,omitempty"`
	Pool      *postgres.PoolStats `json:"pool,omitempty"`
}

// ReadinessResponse - ответ readiness check.
type ReadinessResponse struct {
	Ready     bool              `json:"ready"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// ============================================
// HTTP Handlers
// ============================================

// Health возвращает базовый health статус.
//
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    h.uptime(),
		Timestamp: time.Now().UTC(),
	})
}

// Ready проверяет, что БД отвечает.
//
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{"database": h.pingDatabase(c.Request.Context(), true)}
	ready := !strings.HasPrefix(checks["database"], "unhealthy")

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, ReadinessResponse{
		Ready:     ready,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	})
}

// Live возвращает статус "живости" приложения.
//
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// DetailedHealth добавляет к health статистику пула соединений.
//
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    h.uptime(),
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{"database": h.pingDatabase(c.Request.Context(), false)},
	}

	switch resp.Checks["database"] {
	case "healthy":
		stats := h.db.Stats()
		resp.Pool = &stats
	case "unhealthy":
		resp.Status = "unhealthy"
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes регистрирует health check маршруты вне API префикса.
func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.Health)
	router.GET("/health/detailed", h.DetailedHealth)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)
}

// pingDatabase возвращает "healthy", "unhealthy[: reason]" или "not configured".
func (h *HealthHandler) pingDatabase(ctx context.Context, withReason bool) string {
	if h.db == nil {
		return "not configured"
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		if withReason {
			return "unhealthy: " + err.Error()
		}
		return "unhealthy"
	}
	return "healthy"
}

func (h *HealthHandler) uptime() string {
	return time.Since(h.startTime).Round(time.Second).String()
}
