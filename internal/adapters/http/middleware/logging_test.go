package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/lasercare/internal/pkg/logger"
)

// newCapturingLogger пишет JSON через ContextHandler, как в production.
func newCapturingLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.New(&logger.Config{Level: "debug", Format: "json", Output: buf}), buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "expected a log record")
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func setupLoggingRouter(log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.Use(Logging(&LoggingConfig{Logger: log, SkipPaths: []string{"/health"}}))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/pacientes/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.Param("id")}) })
	router.POST("/api/proceduras", func(c *gin.Context) { c.JSON(http.StatusBadRequest, gin.H{"error": "bad"}) })
	router.DELETE("/api/proceduras/:id", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"}) })
	return router
}

func TestLogging_BasicRequest(t *testing.T) {
	log, buf := newCapturingLogger()
	router := setupLoggingRouter(log)

	req := httptest.NewRequest(http.MethodGet, "/api/pacientes/7", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	rec := lastRecord(t, buf)
	assert.Equal(t, "HTTP Request", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "GET", rec["method"])
	assert.Equal(t, "/api/pacientes/7", rec["path"])
	assert.Equal(t, "/api/pacientes/:id", rec["route"])
	assert.EqualValues(t, 200, rec["status"])
	assert.Equal(t, "req-42", rec["request_id"])
}

func TestLogging_LevelByStatus(t *testing.T) {
	tests := []struct {
		method string
		path   string
		level  string
	}{
		{http.MethodPost, "/api/proceduras", "WARN"},
		{http.MethodDelete, "/api/proceduras/1", "ERROR"},
		{http.MethodGet, "/nowhere", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			log, buf := newCapturingLogger()
			router := setupLoggingRouter(log)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.level, lastRecord(t, buf)["level"])
		})
	}
}

func TestLogging_SkipPaths(t *testing.T) {
	log, buf := newCapturingLogger()
	router := setupLoggingRouter(log)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Zero(t, buf.Len())
}

func TestLogging_DoesNotLogBodies(t *testing.T) {
	log, buf := newCapturingLogger()
	router := setupLoggingRouter(log)

	body := `{"id_paciente":1,"komentar":"Елена, тел. 0888"}`
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/proceduras", strings.NewReader(body)))

	assert.NotContains(t, buf.String(), "0888")
}

func TestLogging_NilConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logging(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
