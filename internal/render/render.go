// Package render draws a computed week layout as monospace text.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"task-board/internal/dates"
	"task-board/internal/layout"
	"task-board/internal/model"
)

const separator = "│"

// Options controls the grid. Style, when set, decorates a padded cell; it
// must not change the visible width.
type Options struct {
	ColumnWidth int
	Style       func(task model.Task, cell string) string
	Header      func(cell string) string
}

func DefaultOptions() Options {
	return Options{ColumnWidth: 12}
}

// Grid renders one text line per layout row under a day header. Tasks are
// matched to placements by ID.
func Grid(l layout.Layout, tasks []model.Task, opts Options) string {
	if opts.ColumnWidth < 3 {
		opts.ColumnWidth = 3
	}
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	rows := make([][]layout.Placement, l.Rows())
	for _, p := range l.Placements {
		rows[p.Row] = append(rows[p.Row], p)
	}

	var b strings.Builder
	b.WriteString(header(l.Week, opts))
	b.WriteByte('\n')
	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].StartColumn < row[j].StartColumn })
		var cells []string
		col := 0
		for _, p := range row {
			for ; col < p.StartColumn; col++ {
				cells = append(cells, strings.Repeat(" ", opts.ColumnWidth))
			}
			width := p.ColumnSpan*opts.ColumnWidth + (p.ColumnSpan - 1)
			task := byID[p.TaskID]
			cell := runewidth.FillRight(runewidth.Truncate(Label(task), width, "…"), width)
			if opts.Style != nil {
				cell = opts.Style(task, cell)
			}
			cells = append(cells, cell)
			col += p.ColumnSpan
		}
		for ; col < layout.Columns; col++ {
			cells = append(cells, strings.Repeat(" ", opts.ColumnWidth))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, separator), " "))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func header(w dates.Week, opts Options) string {
	cells := make([]string, 0, layout.Columns)
	for _, day := range w.Days {
		t := dates.MustParse(day)
		label := fmt.Sprintf("%s %d", t.Weekday().String()[:3], t.Day())
		cell := runewidth.FillRight(runewidth.Truncate(label, opts.ColumnWidth, ""), opts.ColumnWidth)
		if opts.Header != nil {
			cell = opts.Header(cell)
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, separator)
}

// Label is the card text: title plus recurrence marker.
func Label(t model.Task) string {
	switch t.Recurring {
	case model.RecurringWeekly, model.RecurringMonthly:
		return t.Title + " ↻"
	case model.RecurringDaily:
		return t.Title + " ↻d"
	}
	return t.Title
}

// Agenda lists the week's tasks per day, starting tasks only, with their
// short IDs and statuses.
func Agenda(w dates.Week, tasks []model.Task) string {
	byDay := make(map[string][]model.Task)
	for _, t := range tasks {
		if w.Contains(t.StartDate) {
			byDay[t.StartDate] = append(byDay[t.StartDate], t)
		}
	}

	var b strings.Builder
	for _, day := range w.Days {
		ts := byDay[day]
		if len(ts) == 0 {
			continue
		}
		t := dates.MustParse(day)
		b.WriteString(fmt.Sprintf("%s %s\n", t.Weekday().String()[:3], t.Format("Jan 2")))
		for _, task := range ts {
			span, err := dates.Span(task.StartDate, task.EndDate)
			if err != nil || span < 1 {
				span = 1
			}
			line := fmt.Sprintf("  %s %s · %s", task.ShortID(), Label(task), task.Status)
			if span > 1 {
				line += fmt.Sprintf(" · %dd", span)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
