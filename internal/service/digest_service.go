package service

import (
	"context"
	"fmt"
	"html"
	"slices"
	"sort"
	"strings"

	"task-board/internal/dates"
	"task-board/internal/model"
)

// Digest is the weekly summary sent to the board owner.
type Digest struct {
	Week   dates.Week
	Text   string
	Weekly []model.Task
	Daily  []model.Task
}

// DigestService builds the weekly summary with pending recurring proposals.
type DigestService struct {
	tasks      *TaskService
	recurrence *RecurrenceService
	statuses   *StatusService
}

func NewDigestService(tasks *TaskService, recurrence *RecurrenceService, statuses *StatusService) *DigestService {
	return &DigestService{tasks: tasks, recurrence: recurrence, statuses: statuses}
}

func (s *DigestService) WeeklyDigest(ctx context.Context, week dates.Week) (Digest, error) {
	tasks, err := s.tasks.ListRange(ctx, week.Start, week.End)
	if err != nil {
		return Digest{}, err
	}
	weekly, err := s.recurrence.Propose(ctx, week, model.RecurringWeekly)
	if err != nil {
		return Digest{}, err
	}
	daily, err := s.recurrence.Propose(ctx, week, model.RecurringDaily)
	if err != nil {
		return Digest{}, err
	}
	palette, err := s.statuses.Palette(ctx)
	if err != nil {
		return Digest{}, err
	}

	counts := make(map[string]int)
	for _, t := range tasks {
		st, _ := palette.Lookup(t.Status)
		counts[st.Category]++
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Week %s</b>\n\n", html.EscapeString(week.Label())))
	if len(tasks) == 0 {
		b.WriteString("No tasks on the board yet.\n")
	} else {
		var parts []string
		for _, c := range categoriesOf(counts) {
			parts = append(parts, fmt.Sprintf("%s %d", html.EscapeString(c), counts[c]))
		}
		b.WriteString(fmt.Sprintf("%d tasks: %s\n", len(tasks), strings.Join(parts, " · ")))
	}

	b.WriteString("\n♻️ <b>Recurring</b>\n")
	if len(weekly)+len(daily) == 0 {
		b.WriteString("— nothing to add\n")
	} else {
		if len(weekly) > 0 {
			b.WriteString(fmt.Sprintf("%d weekly: %s\n", len(weekly), titles(weekly)))
		}
		if len(daily) > 0 {
			b.WriteString(fmt.Sprintf("%d daily: %s\n", len(daily), titles(daily)))
		}
	}

	return Digest{
		Week:   week,
		Text:   strings.TrimSpace(b.String()),
		Weekly: weekly,
		Daily:  daily,
	}, nil
}

func categoriesOf(counts map[string]int) []string {
	var out []string
	for _, c := range model.Categories {
		if counts[c] > 0 {
			out = append(out, c)
		}
	}
	var other []string
	for c, n := range counts {
		if n > 0 && !slices.Contains(model.Categories, c) {
			other = append(other, c)
		}
	}
	sort.Strings(other)
	return append(out, other...)
}

// titles lists distinct titles in order.
func titles(tasks []model.Task) string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range tasks {
		if seen[t.Title] {
			continue
		}
		seen[t.Title] = true
		names = append(names, html.EscapeString(t.Title))
	}
	return strings.Join(names, ", ")
}
