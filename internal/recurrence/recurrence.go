// Package recurrence derives new task instances from recurring templates.
package recurrence

import (
	"errors"
	"fmt"

	"task-board/internal/dates"
	"task-board/internal/model"
)

var (
	ErrUnsupportedMode = errors.New("unsupported recurrence mode")
	ErrNoTasks         = errors.New("no tasks provided")
)

// Propose returns the instances that mode would add to week. Candidates
// carry no ID and are not persisted.
//
// Every recurring task of the mode that starts on or before the week's end
// acts as a template. Weekly keeps the latest-starting one per title and
// weekday, daily the latest-starting one per title. A title is skipped where
// a task with that title already starts in the target slot: anywhere in the
// week for weekly, on the exact day for daily.
func Propose(all []model.Task, week dates.Week, mode model.Recurring) ([]model.Task, error) {
	switch mode {
	case model.RecurringWeekly:
		return proposeWeekly(all, week)
	case model.RecurringDaily:
		return proposeDaily(all, week)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

func proposeWeekly(all []model.Task, week dates.Week) ([]model.Task, error) {
	started := make(map[string]bool)
	for _, t := range all {
		if week.Contains(t.StartDate) {
			started[t.Title] = true
		}
	}

	tmpls, err := templates(all, week, model.RecurringWeekly, weekdayKey)
	if err != nil {
		return nil, err
	}
	var out []model.Task
	for _, tmpl := range tmpls {
		if started[tmpl.Title] {
			continue
		}
		offset, err := weekdayOffset(tmpl.StartDate)
		if err != nil {
			return nil, err
		}
		inst, err := instance(tmpl, week.Days[offset])
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func proposeDaily(all []model.Task, week dates.Week) ([]model.Task, error) {
	type slot struct{ title, date string }
	started := make(map[slot]bool)
	for _, t := range all {
		if week.Contains(t.StartDate) {
			started[slot{t.Title, t.StartDate}] = true
		}
	}

	tmpls, err := templates(all, week, model.RecurringDaily, titleKey)
	if err != nil {
		return nil, err
	}
	var out []model.Task
	for _, tmpl := range tmpls {
		for _, day := range week.Days {
			if started[slot{tmpl.Title, day}] {
				continue
			}
			inst, err := instance(tmpl, day)
			if err != nil {
				return nil, err
			}
			out = append(out, inst)
		}
	}
	return out, nil
}

// templates picks the latest-starting task for each key, keeping first-seen
// key order.
func templates(all []model.Task, week dates.Week, mode model.Recurring, keyOf func(model.Task) (string, error)) ([]model.Task, error) {
	var order []string
	latest := make(map[string]model.Task)
	for _, t := range all {
		if t.Recurring != mode || t.StartDate > week.End {
			continue
		}
		key, err := keyOf(t)
		if err != nil {
			return nil, err
		}
		prev, ok := latest[key]
		if !ok {
			order = append(order, key)
		}
		if !ok || t.StartDate > prev.StartDate {
			latest[key] = t
		}
	}
	out := make([]model.Task, 0, len(order))
	for _, key := range order {
		out = append(out, latest[key])
	}
	return out, nil
}

func titleKey(t model.Task) (string, error) {
	return t.Title, nil
}

// weekdayKey keeps one weekly template per title and weekday, so a task
// repeated on Monday and Thursday projects to both days.
func weekdayKey(t model.Task) (string, error) {
	offset, err := weekdayOffset(t.StartDate)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\x00%d", t.Title, offset), nil
}

// weekdayOffset is the Monday-first column of date.
func weekdayOffset(date string) (int, error) {
	start, err := dates.Parse(date)
	if err != nil {
		return 0, fmt.Errorf("template start %q: %w", date, err)
	}
	offset := int(start.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	return offset, nil
}

// instance anchors a copy of tmpl at start, keeping its duration.
func instance(tmpl model.Task, start string) (model.Task, error) {
	duration, err := dates.DaysDifference(tmpl.StartDate, tmpl.EndDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("template %q: %w", tmpl.Title, err)
	}
	if duration < 0 {
		duration = 0
	}
	end, err := dates.AddDays(start, duration)
	if err != nil {
		return model.Task{}, err
	}
	var desc *string
	if tmpl.Description != nil {
		d := *tmpl.Description
		desc = &d
	}
	return model.Task{
		Title:       tmpl.Title,
		Description: desc,
		StartDate:   start,
		EndDate:     end,
		Status:      model.DefaultStatus,
		Priority:    tmpl.Priority,
		Recurring:   tmpl.Recurring,
		Type:        tmpl.Type,
	}, nil
}

// Validate gates a batch before insertion. The first failing item fails the
// whole batch; the error names the item and the offending value.
func Validate(candidates []model.Task) error {
	if len(candidates) == 0 {
		return ErrNoTasks
	}
	for i := range candidates {
		c := candidates[i]
		c.Normalize()
		if err := c.Validate(); err != nil {
			return fmt.Errorf("task %d (%q): %w", i+1, c.Title, err)
		}
	}
	return nil
}
