//go:build integration

// Сквозной тест: HTTP роутер контейнера поверх настоящего PostgreSQL.
//
//	go test -tags=integration ./internal/container/...
package container

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Haleralex/lasercare/internal/config"
	"github.com/Haleralex/lasercare/internal/infrastructure/persistence/migrations"
)

func setupContainer(t *testing.T) *Container {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lasercare_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgContainer) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	c, err := NewBuilder(config.Test()).
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).
		WithPool(pool).
		Build(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown(context.Background()) })

	return c
}

func call(t *testing.T, c *Container, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.HTTPServer().Handler().ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

func TestContainer_ProcedureLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	c := setupContainer(t)

	// Пациент
	code, body := call(t, c, http.MethodPost, "/api/pacientes", `{"ime":"Elena Petrova","balans":"10.50"}`)
	require.Equal(t, http.StatusCreated, code, string(body))
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	// Процедура с двумя зонами
	code, body = call(t, c, http.MethodPost, "/api/proceduras",
		`{"id_paciente":`+itoa(created.ID)+`,"data":"2024-03-01","obshta_cena":"120.00","komentar":"first","zonas":[{"id_zona":1,"pulsaciones":300},{"id_zona":2}]}`)
	require.Equal(t, http.StatusCreated, code, string(body))
	var saved struct {
		IDProcedura int64 `json:"id_procedura"`
	}
	require.NoError(t, json.Unmarshal(body, &saved))
	require.Positive(t, saved.IDProcedura)

	code, body = call(t, c, http.MethodGet, "/api/pacientes/"+itoa(created.ID)+"/proceduras", "")
	require.Equal(t, http.StatusOK, code)
	var procedures []struct {
		IDProcedura int64 `json:"idProcedura"`
		Zonas       []struct {
			Zona string `json:"zona"`
		} `json:"zonas"`
	}
	require.NoError(t, json.Unmarshal(body, &procedures))
	require.Len(t, procedures, 1)
	assert.Len(t, procedures[0].Zonas, 2)

	// Несуществующая зона откатывает всю замену
	code, _ = call(t, c, http.MethodPut, "/api/proceduras/"+itoa(saved.IDProcedura),
		`{"data":"2024-03-02","obshta_cena":"90","zonas":[{"id_zona":3},{"id_zona":9999}]}`)
	assert.Equal(t, http.StatusInternalServerError, code)

	code, body = call(t, c, http.MethodGet, "/api/pacientes/"+itoa(created.ID)+"/proceduras", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &procedures))
	assert.Len(t, procedures[0].Zonas, 2)

	// Удаление
	code, _ = call(t, c, http.MethodDelete, "/api/proceduras/"+itoa(saved.IDProcedura), "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, c, http.MethodDelete, "/api/proceduras/"+itoa(saved.IDProcedura), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestContainer_ReadyWithDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	c := setupContainer(t)

	code, body := call(t, c, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"database":"healthy"`)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
