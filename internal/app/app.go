// Package app wires the store and services shared by the bot and boardctl.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"task-board/internal/config"
	"task-board/internal/repository"
	"task-board/internal/seed"
	"task-board/internal/service"
)

type App struct {
	DB *gorm.DB

	TaskRepo   *repository.TaskRepository
	StatusRepo *repository.StatusRepository
	ColorRepo  *repository.ColorRepository

	Tasks      *service.TaskService
	Recurrence *service.RecurrenceService
	Statuses   *service.StatusService
	Digest     *service.DigestService

	board service.BoardOptions
}

// Open connects to the database and builds the services. Default statuses
// and colors are seeded when cfg asks for it.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	a := &App{
		DB:         db,
		TaskRepo:   repository.NewTaskRepository(db),
		StatusRepo: repository.NewStatusRepository(db),
		ColorRepo:  repository.NewColorRepository(db),
		board: service.BoardOptions{
			MoveDelay:   cfg.Board.MoveDebounce,
			StatusDelay: cfg.Board.StatusDebounce,
		},
	}
	a.Tasks = service.NewTaskService(a.TaskRepo)
	a.Recurrence = service.NewRecurrenceService(a.TaskRepo, cfg.Recurrence.LookbackWeeks)
	a.Statuses = service.NewStatusService(a.StatusRepo, a.ColorRepo)
	a.Digest = service.NewDigestService(a.Tasks, a.Recurrence, a.Statuses)

	if cfg.SeedDefaults {
		res, err := a.Seed(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		if res.Statuses > 0 || res.Colors > 0 {
			log.Info("seeded defaults", "statuses", res.Statuses, "colors", res.Colors)
		}
	}
	return a, nil
}

func (a *App) Seed(ctx context.Context) (seed.Result, error) {
	return seed.Seed(ctx, a.StatusRepo, a.ColorRepo)
}

func (a *App) BoardOptions() service.BoardOptions {
	return a.board
}

func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewLogger writes text logs to stderr at the named level. Unknown levels
// fall back to INFO.
func NewLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
