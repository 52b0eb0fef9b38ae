// Command migrate применяет SQL миграции LaserCare.
//
//	migrate [up|down|force|version|drop] [N]
//
// Скрипты встроены в бинарник (internal/infrastructure/persistence/migrations).
// Подключение берётся из -database-url, DATABASE_URL или секции database
// конфигурации.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/Haleralex/lasercare/internal/config"
	"github.com/Haleralex/lasercare/internal/container"
	"github.com/Haleralex/lasercare/internal/infrastructure/persistence/migrations"
	"github.com/Haleralex/lasercare/internal/pkg/logger"
)

func main() {
	var (
		databaseURL string
		command     string
		steps       int
	)

	flag.StringVar(&databaseURL, "database-url", "", "Database connection URL")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, force, version, drop")
	flag.IntVar(&steps, "steps", 0, "Number of steps for up/down (0 = all)")
	flag.Parse()

	log := logger.Setup(&logger.Config{Level: "info", Format: "text", Output: os.Stdout})

	_ = godotenv.Load()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		cfg, err := config.Load("configs", "config")
		if err != nil {
			fatal(log, "failed to load config", err)
		}
		databaseURL = container.PostgresConfig(cfg.Database).DSN()
	}

	// Позиционные аргументы: команда и число шагов/версия
	args := flag.Args()
	if len(args) > 0 {
		command = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fatal(log, "invalid numeric argument", err)
		}
		steps = n
	}

	m, err := migrations.New(databaseURL)
	if err != nil {
		fatal(log, "failed to create migrate instance", err)
	}
	defer m.Close()

	m.Log = &migrationLogger{log: log}

	if err := execute(m, command, steps, len(args) > 1); err != nil {
		fatal(log, "migration "+command+" failed", err)
	}
}

// execute выполняет команду. hasArg означает, что число передано явно
// (для force оно обязательно).
func execute(m *migrate.Migrate, command string, steps int, hasArg bool) error {
	switch command {
	case "up":
		var err error
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		slog.Info("Migrations applied successfully")

	case "down":
		var err error
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		slog.Info("Migrations rolled back successfully")

	case "force":
		if !hasArg {
			return errors.New("force requires a version argument")
		}
		if err := m.Force(steps); err != nil {
			return err
		}
		slog.Info("Forced version", slog.Int("version", steps))

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			slog.Info("No migrations applied yet")
			return nil
		}
		if err != nil {
			return err
		}
		slog.Info("Current version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	case "drop":
		if err := m.Drop(); err != nil {
			return err
		}
		slog.Info("All tables dropped successfully")

	default:
		return fmt.Errorf("unknown command %q, available: up, down, force, version, drop", command)
	}
	return nil
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}

// migrationLogger - адаптер migrate.Logger поверх slog.
type migrationLogger struct {
	log *slog.Logger
}

func (l *migrationLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l *migrationLogger) Verbose() bool {
	return true
}
