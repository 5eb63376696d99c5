package model

import (
	"errors"
	"fmt"
	"strings"

	"task-board/internal/dates"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrDatesRequired    = errors.New("start and end dates are required")
	ErrInvalidRecurring = errors.New("invalid recurring value")
	ErrInvalidPriority  = errors.New("invalid priority value")
	ErrInvalidType      = errors.New("invalid task type")
	ErrInvalidRange     = errors.New("end date is before start date")
)

// Normalize fills create defaults: end date falls back to the start date,
// blank status, priority and recurring take their defaults.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	if t.EndDate == "" {
		t.EndDate = t.StartDate
	}
	if strings.TrimSpace(t.Status) == "" {
		t.Status = DefaultStatus
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Recurring == "" {
		t.Recurring = RecurringNo
	}
}

// Validate checks the fields a task must carry before it reaches the store.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if t.StartDate == "" || t.EndDate == "" {
		return ErrDatesRequired
	}
	if !t.Recurring.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurring, t.Recurring)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	diff, err := dates.DaysDifference(t.StartDate, t.EndDate)
	if err != nil {
		return err
	}
	if diff < 0 {
		return fmt.Errorf("%w: %s < %s", ErrInvalidRange, t.EndDate, t.StartDate)
	}
	return nil
}
