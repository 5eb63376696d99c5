package service

import (
	"context"

	"task-board/internal/model"
)

// TaskStore is the persistence boundary for tasks. repository.TaskRepository
// implements it over gorm.
type TaskStore interface {
	ListInRange(ctx context.Context, start, end string) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	// CreateMany inserts every task or none.
	CreateMany(ctx context.Context, tasks []model.Task) ([]model.Task, error)
	Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	FindByShortID(ctx context.Context, prefix string) (*model.Task, error)
	ListByTitlePrefix(ctx context.Context, prefix string) ([]model.Task, error)
}

type StatusStore interface {
	List(ctx context.Context) ([]model.Status, error)
	FindByName(ctx context.Context, name string) (*model.Status, error)
	Create(ctx context.Context, status *model.Status) error
	Update(ctx context.Context, status *model.Status) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ColorStore interface {
	List(ctx context.Context) ([]model.Color, error)
	FindByHex(ctx context.Context, hex string) (*model.Color, error)
	Create(ctx context.Context, color *model.Color) error
	Update(ctx context.Context, color *model.Color) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
