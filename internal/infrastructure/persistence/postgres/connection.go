// Package postgres реализует persistence layer LaserCare на PostgreSQL.
//
// Один файл на таблицу-агрегат, плюс UnitOfWork для транзакционной записи
// процедур. Репозитории сами выбирают, куда слать запрос: в транзакцию из
// context (если её туда положил UnitOfWork) или в пул.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/lasercare/internal/pkg/metrics"
)

// Config содержит настройки подключения к PostgreSQL.
type Config struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string // disable, require, verify-full
	MaxConns        int32  // верхняя граница одновременных транзакций
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		Database:        "lasercare",
		User:            "postgres",
		Password:        "postgres",
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}

// DSN собирает URL подключения. Пароль экранируется, поэтому может
// содержать пробелы и спецсимволы.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// NewConnectionPool создаёт пул и проверяет его ping-ом.
// Пул - единственный владелец соединений; UnitOfWork берёт из него одно
// соединение на транзакцию и всегда возвращает его обратно.
func NewConnectionPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// HealthCheck проверяет доступность БД для /ready.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return pool.Ping(ctx)
}

// PoolStats - снимок статистики пула для /health/detailed.
type PoolStats struct {
	TotalConns      int32 `json:"total_conns"`
	IdleConns       int32 `json:"idle_conns"`
	AcquiredConns   int32 `json:"acquired_conns"`
	MaxConns        int32 `json:"max_conns"`
	AcquireCount    int64 `json:"acquire_count"`
	AcquireDuration int64 `json:"acquire_duration_ns"`
}

// GetPoolStats возвращает текущую статистику пула и заодно обновляет
// gauges соединений в Prometheus.
func GetPoolStats(pool *pgxpool.Pool) PoolStats {
	stat := pool.Stat()
	stats := PoolStats{
		TotalConns:      stat.TotalConns(),
		IdleConns:       stat.IdleConns(),
		AcquiredConns:   stat.AcquiredConns(),
		MaxConns:        stat.MaxConns(),
		AcquireCount:    stat.AcquireCount(),
		AcquireDuration: stat.AcquireDuration().Nanoseconds(),
	}
	metrics.UpdateDBConnections(stats.IdleConns, stats.AcquiredConns, stats.MaxConns)
	return stats
}

// PoolProbe отдаёт health handler'у ping и статистику пула.
type PoolProbe struct {
	pool *pgxpool.Pool
}

// NewPoolProbe создаёт PoolProbe.
func NewPoolProbe(pool *pgxpool.Pool) *PoolProbe {
	return &PoolProbe{pool: pool}
}

// Ping проверяет соединение с БД.
func (p *PoolProbe) Ping(ctx context.Context) error {
	return HealthCheck(ctx, p.pool)
}

// Stats возвращает статистику пула.
func (p *PoolProbe) Stats() PoolStats {
	return GetPoolStats(p.pool)
}
