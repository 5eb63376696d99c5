package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/recurrence"
)

func TestRecurrenceService_ProposeUsesLookback(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	target := dates.WeekOf(dates.MustParse("2024-06-17"))

	store := newMemStore(
		model.Task{Title: "Standup", StartDate: "2024-06-05", EndDate: "2024-06-05", Recurring: model.RecurringWeekly}, // two weeks back
		model.Task{Title: "Ancient", StartDate: "2024-01-03", EndDate: "2024-01-03", Recurring: model.RecurringWeekly},
	)

	got, err := NewRecurrenceService(store, 4).Propose(ctx, target, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 1)
	is.Equal(got[0].Title, "Standup")
	is.Equal(got[0].StartDate, "2024-06-19")

	got, err = NewRecurrenceService(store, 1).Propose(ctx, target, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 0) // template is outside a one-week lookback
}

func TestRecurrenceService_MaterializeAllOrNothing(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store := newMemStore()
	svc := NewRecurrenceService(store, 4)

	good := model.Task{Title: "A", StartDate: "2024-06-17", EndDate: "2024-06-17", Recurring: model.RecurringWeekly}
	bad := model.Task{Title: "B", StartDate: "2024-06-18", EndDate: "2024-06-18", Recurring: "bogus"}

	_, err := svc.Materialize(ctx, []model.Task{good, bad})
	is.True(errors.Is(err, model.ErrInvalidRecurring))
	is.True(strings.Contains(err.Error(), `"bogus"`))
	is.Equal(store.len(), 0)

	_, err = svc.Materialize(ctx, nil)
	is.True(errors.Is(err, recurrence.ErrNoTasks))

	store.createErr = errors.New("disk full")
	_, err = svc.Materialize(ctx, []model.Task{good})
	is.True(err != nil)
	is.Equal(store.len(), 0)

	store.createErr = nil
	created, err := svc.Materialize(ctx, []model.Task{good})
	is.NoErr(err)
	is.Equal(len(created), 1)
	is.Equal(created[0].Status, model.DefaultStatus)
	is.Equal(store.len(), 1)
}

func TestRecurrenceService_ConfirmThenProposeIsEmpty(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	target := dates.WeekOf(dates.MustParse("2024-06-17"))
	store := newMemStore(
		model.Task{Title: "Inbox", StartDate: "2024-06-12", EndDate: "2024-06-12", Recurring: model.RecurringDaily},
	)
	svc := NewRecurrenceService(store, 4)

	proposed, err := svc.Propose(ctx, target, model.RecurringDaily)
	is.NoErr(err)
	is.Equal(len(proposed), 7)

	_, err = svc.Materialize(ctx, proposed)
	is.NoErr(err)

	again, err := svc.Propose(ctx, target, model.RecurringDaily)
	is.NoErr(err)
	is.Equal(len(again), 0)
}
