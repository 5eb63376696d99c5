package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"task-board/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListInRange returns tasks that start in, end in or span [start, end],
// ordered by start date.
func (r *TaskRepository) ListInRange(ctx context.Context, start, end string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("(start_date >= ? AND start_date <= ?) OR (end_date >= ? AND end_date <= ?) OR (start_date <= ? AND end_date >= ?)",
			start, end, start, end, start, end).
		Order("start_date ASC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// CreateMany inserts the batch in one transaction. On failure nothing is kept.
func (r *TaskRepository) CreateMany(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	created := make([]model.Task, len(tasks))
	copy(created, tasks)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range created {
			if err := tx.Create(&created[i]).Error; err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create tasks: %w", err)
	}
	return created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, wrapNotFound("find task", err)
	}
	return &task, nil
}

// FindByShortID resolves the ID prefix shown in chat. An ambiguous prefix
// is reported as not found.
func (r *TaskRepository) FindByShortID(ctx context.Context, prefix string) (*model.Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("find task: %w", ErrNotFound)
	}
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("id LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").Limit(2).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if len(tasks) != 1 {
		return nil, fmt.Errorf("find task %q: %w", prefix, ErrNotFound)
	}
	return &tasks[0], nil
}

// ListByTitlePrefix returns tasks whose title starts with prefix.
func (r *TaskRepository) ListByTitlePrefix(ctx context.Context, prefix string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("title LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("title ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by title: %w", err)
	}
	return tasks, nil
}

// Update applies the patch and returns the stored row.
func (r *TaskRepository) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	db := r.db.WithContext(ctx)
	if !patch.Empty() {
		res := db.Model(&model.Task{}).Where("id = ?", id).Updates(patch.Columns())
		if res.Error != nil {
			return nil, fmt.Errorf("update task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("update task %q: %w", id, ErrNotFound)
		}
	}
	var task model.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, wrapNotFound("update task", err)
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete task %q: %w", id, ErrNotFound)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
