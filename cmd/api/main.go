// Command api запускает REST API LaserCare.
//
// Конфигурация: configs/config.yaml, переменные LASERCARE_* и legacy
// переменные (PORT, DB_*, FRONTEND_URL). Файл .env подхватывается,
// если он есть.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Haleralex/lasercare/internal/config"
	"github.com/Haleralex/lasercare/internal/container"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env нужен только локально, в контейнере его нет
	_ = godotenv.Load()

	cfg, err := config.Load("configs", "config")
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := container.New(cfg)
	if err := c.Initialize(ctx); err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		_ = c.Shutdown(context.Background())
		return 1
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+5*time.Second)
		defer cancel()
		if err := c.Shutdown(shutdownCtx); err != nil {
			c.Logger().Error("Shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := c.Run(ctx); err != nil {
		c.Logger().Error("Server error", slog.String("error", err.Error()))
		return 1
	}

	c.Logger().Info("Server stopped gracefully")
	return 0
}
