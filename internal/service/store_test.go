package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"task-board/internal/model"
	"task-board/internal/repository"
)

// memStore is an in-memory TaskStore. updateErr, when set, fails every Update.
type memStore struct {
	mu        sync.Mutex
	tasks     map[string]model.Task
	createErr error
	updateErr error
	updates   int
}

func newMemStore(tasks ...model.Task) *memStore {
	s := &memStore{tasks: make(map[string]model.Task)}
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		s.tasks[t.ID] = t
	}
	return s
}

func (s *memStore) sorted(keep func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func (s *memStore) ListInRange(ctx context.Context, start, end string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sorted(func(t model.Task) bool {
		return (t.StartDate >= start && t.StartDate <= end) ||
			(t.EndDate >= start && t.EndDate <= end) ||
			(t.StartDate <= start && t.EndDate >= end)
	}), nil
}

func (s *memStore) Create(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *memStore) CreateMany(_ context.Context, tasks []model.Task) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, fmt.Errorf("create tasks: %w", s.createErr)
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		t.ID = uuid.NewString()
		out[i] = t
	}
	for _, t := range out {
		s.tasks[t.ID] = t
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("update task: %w", repository.ErrNotFound)
	}
	t = patch.Apply(t)
	s.tasks[id] = t
	return &t, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("delete task: %w", repository.ErrNotFound)
	}
	delete(s.tasks, id)
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("find task: %w", repository.ErrNotFound)
	}
	return &t, nil
}

func (s *memStore) FindByShortID(_ context.Context, prefix string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := s.sorted(func(t model.Task) bool { return prefix != "" && strings.HasPrefix(t.ID, prefix) })
	if len(found) != 1 {
		return nil, fmt.Errorf("find task: %w", repository.ErrNotFound)
	}
	return &found[0], nil
}

func (s *memStore) ListByTitlePrefix(_ context.Context, prefix string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(t model.Task) bool { return strings.HasPrefix(t.Title, prefix) }), nil
}

func (s *memStore) get(id string) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *memStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

type memStatuses struct {
	items  []model.Status
	nextID uint
}

func (m *memStatuses) List(context.Context) ([]model.Status, error) {
	return append([]model.Status(nil), m.items...), nil
}

func (m *memStatuses) FindByName(_ context.Context, name string) (*model.Status, error) {
	for _, st := range m.items {
		if st.Name == name {
			return &st, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStatuses) Create(_ context.Context, st *model.Status) error {
	m.nextID++
	st.ID = m.nextID
	m.items = append(m.items, *st)
	return nil
}

func (m *memStatuses) Update(_ context.Context, st *model.Status) error {
	for i := range m.items {
		if m.items[i].ID == st.ID {
			m.items[i] = *st
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStatuses) Delete(_ context.Context, id uint) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStatuses) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

type memColors struct {
	items  []model.Color
	nextID uint
}

func (m *memColors) List(context.Context) ([]model.Color, error) {
	return append([]model.Color(nil), m.items...), nil
}

func (m *memColors) FindByHex(_ context.Context, hex string) (*model.Color, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Hex, hex) {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("find color: %w", repository.ErrNotFound)
}

func (m *memColors) Create(_ context.Context, c *model.Color) error {
	m.nextID++
	c.ID = m.nextID
	m.items = append(m.items, *c)
	return nil
}

func (m *memColors) Update(_ context.Context, c *model.Color) error {
	for i := range m.items {
		if m.items[i].ID == c.ID {
			m.items[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memColors) Delete(_ context.Context, id uint) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memColors) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

var (
	_ TaskStore   = (*memStore)(nil)
	_ StatusStore = (*memStatuses)(nil)
	_ ColorStore  = (*memColors)(nil)

	_ TaskStore   = (*repository.TaskRepository)(nil)
	_ StatusStore = (*repository.StatusRepository)(nil)
	_ ColorStore  = (*repository.ColorRepository)(nil)
)
