// Package http содержит HTTP адаптер (REST API) клиники.
//
// Структура пакета:
// - common/: формат ошибок и helpers (вынесены для избежания циклических импортов)
// - middleware/: request ID, logging, recovery, CORS, metrics
// - handlers/: HTTP handlers для каждого ресурса
// - router.go: конфигурация маршрутов
// - server.go: HTTP server lifecycle
//
// Pattern: Adapter (Hexagonal Architecture)
// - HTTP - внешний адаптер, который преобразует HTTP запросы в вызовы Use Cases
// - Не содержит бизнес-логики
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Haleralex/lasercare/internal/adapters/http/common"
	"github.com/Haleralex/lasercare/internal/adapters/http/handlers"
	"github.com/Haleralex/lasercare/internal/adapters/http/middleware"
)

// ============================================
// Router Configuration
// ============================================

// RouterConfig - конфигурация роутера.
type RouterConfig struct {
	// Logger для middleware
	Logger *slog.Logger
	// ServiceName - имя сервиса в спанах otelgin
	ServiceName string
	// Version приложения
	Version string
	// Environment (development, staging, production)
	Environment string
	// APIPrefix - общий префикс маршрутов, по умолчанию /api
	APIPrefix string
	// ExposeErrorDetails - отдавать ли details в ответах с ошибкой
	ExposeErrorDetails bool
	// Tracing включает otelgin middleware
	Tracing bool
	// CORS - nil означает middleware.DefaultCORSConfig
	CORS *middleware.CORSConfig
	// Database - ping и статистика пула для health checks, может быть nil
	Database handlers.DatabaseProbe
}

// DefaultRouterConfig - конфигурация по умолчанию для development.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:             slog.Default(),
		ServiceName:        "lasercare",
		Version:            "dev",
		Environment:        "development",
		APIPrefix:          "/api",
		ExposeErrorDetails: true,
	}
}

// ============================================
// Use Case Providers
// ============================================

// PatientUseCases - provider для use cases пациентов.
type PatientUseCases struct {
	List   handlers.ListPatientsUseCase
	Get    handlers.GetPatientUseCase
	Create handlers.CreatePatientUseCase
	Update handlers.UpdatePatientUseCase
	Delete handlers.DeletePatientUseCase
}

// ZoneUseCases - provider для справочника зон.
type ZoneUseCases struct {
	List handlers.ListZonesUseCase
}

// ProcedureUseCases - provider для use cases процедур.
type ProcedureUseCases struct {
	Create         handlers.CreateProcedureUseCase
	Update         handlers.UpdateProcedureUseCase
	Delete         handlers.DeleteProcedureUseCase
	ListForPatient handlers.ListPatientProceduresUseCase
	ListLines      handlers.ListProcedureLinesUseCase
}

// ============================================
// Router Builder
// ============================================

// RouterBuilder - builder для создания роутера.
//
// Pattern: Builder
// - Позволяет пошагово настроить роутер
// - Проще тестировать: группу без use cases просто не регистрируем
type RouterBuilder struct {
	config     *RouterConfig
	patients   *PatientUseCases
	zones      *ZoneUseCases
	procedures *ProcedureUseCases
}

// NewRouterBuilder создаёт новый builder.
func NewRouterBuilder(config *RouterConfig) *RouterBuilder {
	if config == nil {
		config = DefaultRouterConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.APIPrefix == "" {
		config.APIPrefix = "/api"
	}
	return &RouterBuilder{
		config: config,
	}
}

// WithPatientUseCases добавляет use cases пациентов.
func (b *RouterBuilder) WithPatientUseCases(useCases *PatientUseCases) *RouterBuilder {
	b.patients = useCases
	return b
}

// WithZoneUseCases добавляет справочник зон.
func (b *RouterBuilder) WithZoneUseCases(useCases *ZoneUseCases) *RouterBuilder {
	b.zones = useCases
	return b
}

// WithProcedureUseCases добавляет use cases процедур.
func (b *RouterBuilder) WithProcedureUseCases(useCases *ProcedureUseCases) *RouterBuilder {
	b.procedures = useCases
	return b
}

// Build создаёт сконфигурированный Gin Engine.
func (b *RouterBuilder) Build() *gin.Engine {
	if b.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupValidator()

	// ============================================
	// Global Middleware
	// ============================================

	// 1. Флаг details нужен recovery, поэтому он раньше
	router.Use(middleware.ErrorDetails(b.config.ExposeErrorDetails))

	// 2. Recovery
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           b.config.Logger,
		EnableStackTrace: b.config.Environment != "production",
	}))

	// 3. Tracing: спан запроса должен существовать до логов
	if b.config.Tracing {
		router.Use(otelgin.Middleware(b.config.ServiceName))
	}

	// 4. Request ID
	router.Use(middleware.RequestID())

	// 5. CORS
	router.Use(middleware.CORS(b.config.CORS))

	// 6. Logging
	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    b.config.Logger,
		SkipPaths: []string{"/health", "/live", "/ready", "/metrics"},
	}))

	// 7. Metrics (Prometheus)
	router.Use(middleware.Metrics())

	// ============================================
	// Operational endpoints
	// ============================================

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.NewHealthHandler(b.config.Database, b.config.Version).RegisterRoutes(router)

	// ============================================
	// API Routes
	// ============================================

	api := router.Group(b.config.APIPrefix)

	if b.patients != nil {
		patientHandler := handlers.NewPatientHandler(
			b.patients.List,
			b.patients.Get,
			b.patients.Create,
			b.patients.Update,
			b.patients.Delete,
		)
		pacientes := api.Group("/pacientes")
		{
			pacientes.GET("", patientHandler.ListPatients)
			pacientes.GET("/:id", patientHandler.GetPatient)
			pacientes.POST("", patientHandler.CreatePatient)
			pacientes.PUT("/:id", patientHandler.UpdatePatient)
			pacientes.DELETE("/:id", patientHandler.DeletePatient)
		}
	}

	if b.zones != nil {
		api.GET("/zonas", handlers.NewZoneHandler(b.zones.List).ListZones)
	}

	if b.procedures != nil {
		procedureHandler := handlers.NewProcedureHandler(
			b.procedures.Create,
			b.procedures.Update,
			b.procedures.Delete,
			b.procedures.ListForPatient,
			b.procedures.ListLines,
		)
		api.GET("/pacientes/:id/proceduras", procedureHandler.ListPatientProcedures)

		proceduras := api.Group("/proceduras")
		{
			proceduras.GET("", procedureHandler.ListProcedures)
			proceduras.POST("", procedureHandler.CreateProcedure)
			proceduras.PUT("/:id", procedureHandler.UpdateProcedure)
			proceduras.DELETE("/:id", procedureHandler.DeleteProcedure)
		}
	}

	// ============================================
	// 404 Handler
	// ============================================

	router.NoRoute(func(c *gin.Context) {
		common.Error(c, http.StatusNotFound, common.MsgEndpointNotFound, gin.H{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	return router
}

// NewRouter создаёт роутер без use cases (только служебные маршруты).
func NewRouter(config *RouterConfig) *gin.Engine {
	return NewRouterBuilder(config).Build()
}
