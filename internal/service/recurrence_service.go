package service

import (
	"context"

	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/recurrence"
)

// RecurrenceService proposes and materializes recurring instances.
type RecurrenceService struct {
	store         TaskStore
	lookbackWeeks int
}

func NewRecurrenceService(store TaskStore, lookbackWeeks int) *RecurrenceService {
	if lookbackWeeks < 0 {
		lookbackWeeks = 0
	}
	return &RecurrenceService{store: store, lookbackWeeks: lookbackWeeks}
}

// Propose loads the target week plus the lookback window and returns the
// instances mode would add. Nothing is written.
func (s *RecurrenceService) Propose(ctx context.Context, week dates.Week, mode model.Recurring) ([]model.Task, error) {
	from := week.Shift(-s.lookbackWeeks)
	all, err := s.store.ListInRange(ctx, from.Start, week.End)
	if err != nil {
		return nil, err
	}
	return recurrence.Propose(all, week, mode)
}

// Materialize validates the batch and inserts it in one transaction. Any
// invalid item or store failure leaves the store untouched.
func (s *RecurrenceService) Materialize(ctx context.Context, candidates []model.Task) ([]model.Task, error) {
	if err := recurrence.Validate(candidates); err != nil {
		return nil, err
	}
	batch := make([]model.Task, len(candidates))
	for i, c := range candidates {
		c.ID = ""
		c.Normalize()
		batch[i] = c
	}
	return s.store.CreateMany(ctx, batch)
}
