// Package container - Dependency Injection container приложения.
//
// Container управляет жизненным циклом всех зависимостей:
// - Создание (Initialize или ContainerBuilder)
// - Доступ (getters)
// - Закрытие (Shutdown)
//
// Pattern: Composition Root
// - Все зависимости собираются в одном месте
// - Тесты подставляют свой логгер и пул через ContainerBuilder
package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/lasercare/internal/adapters/http"
	"github.com/Haleralex/lasercare/internal/adapters/http/middleware"
	"github.com/Haleralex/lasercare/internal/application/ports"
	"github.com/Haleralex/lasercare/internal/application/usecases/patient"
	"github.com/Haleralex/lasercare/internal/application/usecases/procedure"
	"github.com/Haleralex/lasercare/internal/application/usecases/zone"
	"github.com/Haleralex/lasercare/internal/config"
	"github.com/Haleralex/lasercare/internal/infrastructure/persistence/postgres"
	"github.com/Haleralex/lasercare/internal/pkg/logger"
	"github.com/Haleralex/lasercare/internal/pkg/tracing"
)

// poolStatsInterval - период обновления метрик пула.
const poolStatsInterval = 15 * time.Second

// ============================================
// Container
// ============================================

// Container - DI контейнер приложения.
type Container struct {
	config *config.Config
	logger *slog.Logger

	// Infrastructure
	pool           *pgxpool.Pool
	tracerShutdown tracing.ShutdownFunc

	// Repositories
	patientRepo   ports.PatientRepository
	zoneRepo      ports.ZoneRepository
	procedureRepo ports.ProcedureRepository

	// Unit of Work
	uow ports.UnitOfWork

	// Use Cases
	listPatientsUC    *patient.ListPatientsUseCase
	getPatientUC      *patient.GetPatientUseCase
	createPatientUC   *patient.CreatePatientUseCase
	updatePatientUC   *patient.UpdatePatientUseCase
	deletePatientUC   *patient.DeletePatientUseCase
	listZonesUC       *zone.ListZonesUseCase
	createProcedureUC *procedure.CreateProcedureUseCase
	updateProcedureUC *procedure.UpdateProcedureUseCase
	deleteProcedureUC *procedure.DeleteProcedureUseCase
	patientProcsUC    *procedure.ListPatientProceduresUseCase
	procedureLinesUC  *procedure.ListProcedureLinesUseCase

	// HTTP
	httpServer *http.Server
}

// New создаёт новый контейнер с заданной конфигурацией.
func New(cfg *config.Config) *Container {
	return &Container{
		config: cfg,
	}
}

// PostgresConfig переводит секцию database в настройки пула.
// Используется и API, и cmd/migrate, чтобы DSN собирался одинаково.
func PostgresConfig(db config.DatabaseConfig) postgres.Config {
	return postgres.Config{
		Host:            db.Host,
		Port:            db.Port,
		Database:        db.Database,
		User:            db.User,
		Password:        db.Password,
		SSLMode:         db.SSLMode,
		MaxConns:        db.MaxConnections,
		MinConns:        db.MinConnections,
		MaxConnLifetime: db.MaxConnLifetime,
		MaxConnIdleTime: db.MaxConnIdleTime,
		ConnectTimeout:  db.ConnectTimeout,
	}
}

// ============================================
// Initialization
// ============================================

// Initialize инициализирует все зависимости.
func (c *Container) Initialize(ctx context.Context) error {
	c.logger = c.initLogger()
	c.logger.Info("Initializing application container...")

	// 1. Tracing
	if err := c.initTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// 2. Database
	if err := c.initDatabase(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database connected",
		slog.String("host", c.config.Database.Host),
		slog.String("database", c.config.Database.Database),
	)

	// 3. Repositories
	c.initRepositories()

	// 4. Use Cases
	c.initUseCases()

	// 5. HTTP Server
	c.initHTTPServer()

	c.logger.Info("Container initialization complete")
	return nil
}

// initLogger инициализирует логгер и делает его логгером по умолчанию.
func (c *Container) initLogger() *slog.Logger {
	return logger.Setup(&logger.Config{
		Level:     c.config.Log.Level,
		Format:    c.config.Log.Format,
		AddSource: c.config.Log.AddSource,
	})
}

// initTracing поднимает OTLP экспорт, если он включён.
func (c *Container) initTracing(ctx context.Context) error {
	shutdown, err := tracing.Setup(ctx, c.config.Tracing, c.config.App.Name, c.config.App.Version)
	if err != nil {
		return err
	}
	c.tracerShutdown = shutdown

	if c.config.Tracing.Enabled {
		c.logger.Info("Tracing enabled", slog.String("endpoint", c.config.Tracing.Endpoint))
	}
	return nil
}

// initDatabase инициализирует подключение к БД.
func (c *Container) initDatabase(ctx context.Context) error {
	pool, err := postgres.NewConnectionPool(ctx, PostgresConfig(c.config.Database))
	if err != nil {
		return err
	}
	c.pool = pool
	return nil
}

// initRepositories инициализирует репозитории и Unit of Work.
func (c *Container) initRepositories() {
	c.patientRepo = postgres.NewPatientRepository(c.pool)
	c.zoneRepo = postgres.NewZoneRepository(c.pool)
	c.procedureRepo = postgres.NewProcedureRepository(c.pool)

	c.uow = postgres.NewUnitOfWork(c.pool, c.logger, c.config.Database.TxTimeout)
}

// initUseCases инициализирует use cases.
func (c *Container) initUseCases() {
	// Patient Use Cases
	c.listPatientsUC = patient.NewListPatientsUseCase(c.patientRepo)
	c.getPatientUC = patient.NewGetPatientUseCase(c.patientRepo)
	c.createPatientUC = patient.NewCreatePatientUseCase(c.patientRepo)
	c.updatePatientUC = patient.NewUpdatePatientUseCase(c.patientRepo)
	c.deletePatientUC = patient.NewDeletePatientUseCase(c.patientRepo)

	// Zone Use Cases
	c.listZonesUC = zone.NewListZonesUseCase(c.zoneRepo)

	// Procedure Use Cases (запись идёт через Unit of Work)
	c.createProcedureUC = procedure.NewCreateProcedureUseCase(c.procedureRepo, c.uow)
	c.updateProcedureUC = procedure.NewUpdateProcedureUseCase(c.procedureRepo, c.uow)
	c.deleteProcedureUC = procedure.NewDeleteProcedureUseCase(c.procedureRepo, c.uow)
	c.patientProcsUC = procedure.NewListPatientProceduresUseCase(c.procedureRepo)
	c.procedureLinesUC = procedure.NewListProcedureLinesUseCase(c.procedureRepo)
}

// initHTTPServer инициализирует HTTP сервер.
func (c *Container) initHTTPServer() {
	routerConfig := &http.RouterConfig{
		Logger:             c.logger,
		ServiceName:        c.config.App.Name,
		Version:            c.config.App.Version,
		Environment:        c.config.App.Environment,
		APIPrefix:          c.config.Server.APIPrefix,
		ExposeErrorDetails: c.config.App.ExposeErrorDetails,
		Tracing:            c.config.Tracing.Enabled,
		CORS:               c.corsConfig(),
	}
	if c.pool != nil {
		routerConfig.Database = postgres.NewPoolProbe(c.pool)
	}

	router := http.NewRouterBuilder(routerConfig).
		WithPatientUseCases(&http.PatientUseCases{
			List:   c.listPatientsUC,
			Get:    c.getPatientUC,
			Create: c.createPatientUC,
			Update: c.updatePatientUC,
			Delete: c.deletePatientUC,
		}).
		WithZoneUseCases(&http.ZoneUseCases{
			List: c.listZonesUC,
		}).
		WithProcedureUseCases(&http.ProcedureUseCases{
			Create:         c.createProcedureUC,
			Update:         c.updateProcedureUC,
			Delete:         c.deleteProcedureUC,
			ListForPatient: c.patientProcsUC,
			ListLines:      c.procedureLinesUC,
		}).
		Build()

	serverConfig := &http.ServerConfig{
		Host:            c.config.Server.Host,
		Port:            c.config.Server.Port,
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}

	c.httpServer = http.NewServer(serverConfig, router)
}

// corsConfig переводит секцию cors в настройки middleware.
// Пустые списки оставляют значения middleware по умолчанию.
func (c *Container) corsConfig() *middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	src := c.config.CORS

	if len(src.AllowedOrigins) > 0 {
		cors.AllowOrigins = src.AllowedOrigins
	}
	if len(src.AllowedMethods) > 0 {
		cors.AllowMethods = src.AllowedMethods
	}
	if len(src.AllowedHeaders) > 0 {
		cors.AllowHeaders = src.AllowedHeaders
	}
	if len(src.ExposedHeaders) > 0 {
		cors.ExposeHeaders = src.ExposedHeaders
	}
	cors.AllowCredentials = src.AllowCredentials
	if src.MaxAge > 0 {
		cors.MaxAge = int(src.MaxAge.Seconds())
	}
	return cors
}

// ============================================
// Getters
// ============================================

// Config возвращает конфигурацию.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger возвращает логгер.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Pool возвращает пул соединений к БД.
func (c *Container) Pool() *pgxpool.Pool {
	return c.pool
}

// HTTPServer возвращает HTTP сервер.
func (c *Container) HTTPServer() *http.Server {
	return c.httpServer
}

// PatientRepository возвращает репозиторий пациентов.
func (c *Container) PatientRepository() ports.PatientRepository {
	return c.patientRepo
}

// ZoneRepository возвращает справочник зон.
func (c *Container) ZoneRepository() ports.ZoneRepository {
	return c.zoneRepo
}

// ProcedureRepository возвращает репозиторий процедур.
func (c *Container) ProcedureRepository() ports.ProcedureRepository {
	return c.procedureRepo
}

// UnitOfWork возвращает Unit of Work.
func (c *Container) UnitOfWork() ports.UnitOfWork {
	return c.uow
}

// CreateProcedureUseCase возвращает use case создания процедуры.
func (c *Container) CreateProcedureUseCase() *procedure.CreateProcedureUseCase {
	return c.createProcedureUC
}

// UpdateProcedureUseCase возвращает use case изменения процедуры.
func (c *Container) UpdateProcedureUseCase() *procedure.UpdateProcedureUseCase {
	return c.updateProcedureUC
}

// DeleteProcedureUseCase возвращает use case удаления процедуры.
func (c *Container) DeleteProcedureUseCase() *procedure.DeleteProcedureUseCase {
	return c.deleteProcedureUC
}

// ============================================
// Run / Shutdown
// ============================================

// Run запускает HTTP сервер и блокируется до отмены ctx.
// Сервер останавливается сам; пул и трейсер закрывает Shutdown.
func (c *Container) Run(ctx context.Context) error {
	if c.httpServer == nil {
		return errors.New("container is not initialized")
	}

	c.logger.Info("Starting LaserCare API Server",
		slog.String("version", c.config.App.Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
	)

	if c.pool != nil {
		go c.reportPoolStats(ctx, poolStatsInterval)
	}

	return c.httpServer.RunWithContext(ctx)
}

// reportPoolStats периодически обновляет gauges пула.
func (c *Container) reportPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			postgres.GetPoolStats(c.pool)
		}
	}
}

// Shutdown выполняет graceful shutdown компонентов, которые не
// останавливаются вместе с сервером.
func (c *Container) Shutdown(ctx context.Context) error {
	log := c.logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("Shutting down container...")

	var errs []error

	// 1. Трейсер: дописываем оставшиеся спаны
	if c.tracerShutdown != nil {
		if err := c.tracerShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}

	// 2. Database (даём время на завершение транзакций)
	if c.pool != nil {
		done := make(chan struct{})
		go func() {
			c.pool.Close()
			close(done)
		}()

		select {
		case <-done:
			log.Info("Database connection closed")
		case <-ctx.Done():
			log.Warn("Database close timeout")
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Info("Container shutdown complete")
	return nil
}

// ============================================
// Builder
// ============================================

// ContainerBuilder - builder для создания контейнера с кастомными компонентами.
type ContainerBuilder struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewBuilder создаёт новый builder.
func NewBuilder(cfg *config.Config) *ContainerBuilder {
	return &ContainerBuilder{
		cfg: cfg,
	}
}

// WithLogger устанавливает кастомный логгер.
func (b *ContainerBuilder) WithLogger(logger *slog.Logger) *ContainerBuilder {
	b.logger = logger
	return b
}

// WithPool устанавливает готовый пул соединений.
func (b *ContainerBuilder) WithPool(pool *pgxpool.Pool) *ContainerBuilder {
	b.pool = pool
	return b
}

// Build создаёт контейнер. Трейсинг здесь не поднимается.
func (b *ContainerBuilder) Build(ctx context.Context) (*Container, error) {
	c := New(b.cfg)

	if b.logger != nil {
		c.logger = b.logger
	} else {
		c.logger = c.initLogger()
	}

	if b.pool != nil {
		c.pool = b.pool
	} else if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initUseCases()
	c.initHTTPServer()

	return c, nil
}
