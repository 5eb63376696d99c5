package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"task-board/internal/dates"
	"task-board/internal/layout"
	"task-board/internal/model"
)

// BoardOptions sets the debounce delays of board edits.
type BoardOptions struct {
	MoveDelay   time.Duration
	StatusDelay time.Duration
}

func DefaultBoardOptions() BoardOptions {
	return BoardOptions{MoveDelay: 500 * time.Millisecond, StatusDelay: 300 * time.Millisecond}
}

// Board is an in-memory snapshot of one viewer's week window: the shown
// week plus its neighbours. Edits apply to the snapshot at once and reach
// the store through debounced writes; a failed write reloads the window.
type Board struct {
	ctx      context.Context
	tasks    *TaskService
	debounce *Debouncer
	opts     BoardOptions
	log      *slog.Logger

	// OnWriteError, when set, is called after a failed write has been
	// followed by a reload.
	OnWriteError func(error)

	mu    sync.Mutex
	week  dates.Week
	byID  map[string]model.Task
	order []string
}

// NewBoard creates an empty board showing the week of now. Debounced writes
// keep ctx values but not its cancellation, so a flush after shutdown still
// reaches the store.
func NewBoard(ctx context.Context, tasks *TaskService, debounce *Debouncer, opts BoardOptions, log *slog.Logger) *Board {
	return &Board{
		ctx:      context.WithoutCancel(ctx),
		tasks:    tasks,
		debounce: debounce,
		opts:     opts,
		log:      log,
		week:     dates.WeekOf(time.Now()),
		byID:     make(map[string]model.Task),
	}
}

// Load replaces the snapshot with the window around week.
func (b *Board) Load(ctx context.Context, week dates.Week) error {
	tasks, err := b.tasks.ListRange(ctx, week.Prev().Start, week.Next().End)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.week = week
	b.byID = make(map[string]model.Task, len(tasks))
	b.order = b.order[:0]
	for _, t := range tasks {
		b.byID[t.ID] = t
		b.order = append(b.order, t.ID)
	}
	return nil
}

// Refresh reloads the window around the current week.
func (b *Board) Refresh(ctx context.Context) error {
	return b.Load(ctx, b.Week())
}

func (b *Board) Week() dates.Week {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.week
}

// Tasks returns the snapshot tasks overlapping the current week in load order.
func (b *Board) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Task, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return layout.Filter(out, b.week)
}

func (b *Board) Layout(opts layout.Options) layout.Layout {
	tasks := b.Tasks()
	return layout.Compute(b.Week(), tasks, opts)
}

func (b *Board) Task(id string) (model.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.byID[id]
	return t, ok
}

// Put adds or replaces a task in the snapshot without writing it.
func (b *Board) Put(task model.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byID[task.ID]; !ok {
		b.order = append(b.order, task.ID)
	}
	b.byID[task.ID] = task
	b.sortLocked()
}

// Remove drops a task from the snapshot and cancels its pending writes.
func (b *Board) Remove(id string) {
	b.debounce.Cancel(datesKey(id))
	b.debounce.Cancel(statusKey(id))

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.byID, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Move shifts the task to start on date, keeping its duration.
func (b *Board) Move(id, date string) (model.Task, error) {
	return b.editDates(id, func(t model.Task) (model.TaskPatch, error) {
		return MovePatch(t, date)
	})
}

// Resize sets the task to last days after its start date.
func (b *Board) Resize(id string, days int) (model.Task, error) {
	return b.editDates(id, func(t model.Task) (model.TaskPatch, error) {
		return ResizePatch(t, days)
	})
}

func (b *Board) editDates(id string, patchFor func(model.Task) (model.TaskPatch, error)) (model.Task, error) {
	b.mu.Lock()
	t, ok := b.byID[id]
	if !ok {
		b.mu.Unlock()
		return model.Task{}, fmt.Errorf("task %q is not on the board", id)
	}
	patch, err := patchFor(t)
	if err != nil {
		b.mu.Unlock()
		return model.Task{}, err
	}
	t = patch.Apply(t)
	b.byID[id] = t
	b.sortLocked()
	b.mu.Unlock()

	// move and resize share a key; the write sends both dates from the snapshot
	b.debounce.Schedule(datesKey(id), b.opts.MoveDelay, func() {
		cur, ok := b.Task(id)
		if !ok {
			return
		}
		b.write(id, model.TaskPatch{StartDate: &cur.StartDate, EndDate: &cur.EndDate})
	})
	return t, nil
}

func (b *Board) SetStatus(id, status string) (model.Task, error) {
	b.mu.Lock()
	t, ok := b.byID[id]
	if !ok {
		b.mu.Unlock()
		return model.Task{}, fmt.Errorf("task %q is not on the board", id)
	}
	t.Status = status
	b.byID[id] = t
	b.mu.Unlock()

	b.debounce.Schedule(statusKey(id), b.opts.StatusDelay, func() {
		cur, ok := b.Task(id)
		if !ok {
			return
		}
		b.write(id, model.TaskPatch{Status: &cur.Status})
	})
	return t, nil
}

// Flush writes pending edits now.
func (b *Board) Flush() {
	b.debounce.Flush()
}

func (b *Board) write(id string, patch model.TaskPatch) {
	stored, err := b.tasks.store.Update(b.ctx, id, patch)
	if err == nil {
		b.mu.Lock()
		if cur, ok := b.byID[id]; ok {
			// keep edits made while the write was in flight
			cur.UpdatedAt = stored.UpdatedAt
			b.byID[id] = cur
		}
		b.mu.Unlock()
		return
	}

	b.log.Error("board write failed, reloading", "task", id, "error", err)
	if rerr := b.Refresh(b.ctx); rerr != nil {
		b.log.Error("board reload failed", "error", rerr)
	}
	if b.OnWriteError != nil {
		b.OnWriteError(err)
	}
}

// sortLocked keeps the snapshot in store order: start date, then load order.
func (b *Board) sortLocked() {
	sort.SliceStable(b.order, func(i, j int) bool {
		return b.byID[b.order[i]].StartDate < b.byID[b.order[j]].StartDate
	})
}

func datesKey(id string) string  { return "dates:" + id }
func statusKey(id string) string { return "status:" + id }
