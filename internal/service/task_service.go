package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task-board/internal/checklist"
	"task-board/internal/dates"
	"task-board/internal/duplicate"
	"task-board/internal/model"
)

var ErrNotChecklist = errors.New("task is not a checklist")

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Status      string
	Priority    model.Priority
	Recurring   model.Recurring
	Type        model.TaskType
}

// TaskService wraps task-related business logic.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	task := model.Task{
		Title:     input.Title,
		StartDate: strings.TrimSpace(input.StartDate),
		EndDate:   strings.TrimSpace(input.EndDate),
		Status:    input.Status,
		Priority:  input.Priority,
		Recurring: input.Recurring,
		Type:      input.Type,
	}
	if input.Description != "" {
		desc := input.Description
		task.Description = &desc
	}
	task.Normalize()
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListRange returns every task overlapping [start, end].
func (s *TaskService) ListRange(ctx context.Context, start, end string) ([]model.Task, error) {
	return s.store.ListInRange(ctx, start, end)
}

// GetTask resolves a full ID or the short prefix shown in chat.
func (s *TaskService) GetTask(ctx context.Context, ref string) (*model.Task, error) {
	ref = strings.TrimSpace(ref)
	if len(ref) == 36 {
		return s.store.FindByID(ctx, ref)
	}
	return s.store.FindByShortID(ctx, ref)
}

// UpdateTask validates the merged result before writing the patch.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	merged := patch.Apply(*current)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, patch)
}

// MovePatch shifts task to start on date, keeping its duration.
func MovePatch(task model.Task, start string) (model.TaskPatch, error) {
	if _, err := dates.Parse(start); err != nil {
		return model.TaskPatch{}, err
	}
	duration, err := dates.DaysDifference(task.StartDate, task.EndDate)
	if err != nil {
		return model.TaskPatch{}, err
	}
	if duration < 0 {
		duration = 0
	}
	end, err := dates.AddDays(start, duration)
	if err != nil {
		return model.TaskPatch{}, err
	}
	return model.TaskPatch{StartDate: &start, EndDate: &end}, nil
}

// ResizePatch sets the end date to start + days. Negative durations clamp
// to a single-day task.
func ResizePatch(task model.Task, days int) (model.TaskPatch, error) {
	if days < 0 {
		days = 0
	}
	end, err := dates.AddDays(task.StartDate, days)
	if err != nil {
		return model.TaskPatch{}, err
	}
	return model.TaskPatch{EndDate: &end}, nil
}

func (s *TaskService) MoveTask(ctx context.Context, id, start string) (*model.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch, err := MovePatch(*task, start)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, patch)
}

func (s *TaskService) ResizeTask(ctx context.Context, id string, days int) (*model.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch, err := ResizePatch(*task, days)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, patch)
}

func (s *TaskService) SetStatus(ctx context.Context, id, status string) (*model.Task, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		status = model.DefaultStatus
	}
	return s.store.Update(ctx, id, model.TaskPatch{Status: &status})
}

// DuplicateTask stores a copy of the task titled after its numbered siblings.
func (s *TaskService) DuplicateTask(ctx context.Context, id string) (*model.Task, error) {
	source, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	siblings, err := s.store.ListByTitlePrefix(ctx, duplicate.BaseTitle(source.Title))
	if err != nil {
		return nil, err
	}
	clone := duplicate.Clone(*source, siblings)
	if err := s.store.Create(ctx, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// ToggleChecklist flips one platform of a checklist task.
func (s *TaskService) ToggleChecklist(ctx context.Context, id, key, platform string) (*model.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Type != model.TypeChecklist {
		return nil, fmt.Errorf("%w: %s", ErrNotChecklist, task.ShortID())
	}
	state, err := checklist.Parse(task.DescriptionText()).Toggle(key, platform)
	if err != nil {
		return nil, err
	}
	raw, err := state.Encode()
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, model.TaskPatch{Description: &raw})
}
