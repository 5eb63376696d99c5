package render

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/mattn/go-runewidth"

	"task-board/internal/dates"
	"task-board/internal/layout"
	"task-board/internal/model"
)

var week = dates.WeekOf(dates.MustParse("2024-06-10"))

func TestGrid(t *testing.T) {
	is := is.New(t)

	tasks := []model.Task{
		{ID: "a", Title: "Standup", StartDate: "2024-06-10", EndDate: "2024-06-10", Recurring: model.RecurringWeekly},
		{ID: "b", Title: "Long shoot day", StartDate: "2024-06-10", EndDate: "2024-06-11"},
		{ID: "c", Title: "Review", StartDate: "2024-06-16", EndDate: "2024-06-16"},
	}
	l := layout.Compute(week, tasks, layout.DefaultOptions())
	out := Grid(l, tasks, Options{ColumnWidth: 8})

	lines := strings.Split(out, "\n")
	is.Equal(len(lines), 1+l.Rows())
	is.True(strings.HasPrefix(lines[0], "Mon 10  │Tue 11"))
	is.True(strings.HasSuffix(lines[0], "Sun 16  "))

	// row 0 holds both single-day tasks, the two-day task drops below Monday
	is.True(strings.HasPrefix(lines[1], "Standup…│"))
	is.True(strings.HasSuffix(lines[1], "Review"))
	is.True(strings.HasPrefix(lines[2], "Long shoot day   │"))
	is.Equal(runewidth.StringWidth(strings.Split(lines[0], "│")[0]), 8)
}

func TestGrid_StyleHook(t *testing.T) {
	is := is.New(t)

	tasks := []model.Task{{ID: "a", Title: "x", StartDate: "2024-06-10", EndDate: "2024-06-10"}}
	l := layout.Compute(week, tasks, layout.DefaultOptions())
	out := Grid(l, tasks, Options{
		ColumnWidth: 4,
		Style:       func(task model.Task, cell string) string { return "[" + task.ID + "]" + cell },
	})
	is.True(strings.Contains(out, "[a]x   "))
}

func TestAgenda(t *testing.T) {
	is := is.New(t)

	tasks := []model.Task{
		{ID: "12345678-aaaa", Title: "Cut", StartDate: "2024-06-12", EndDate: "2024-06-14", Status: "Rough Cut"},
		{ID: "87654321-bbbb", Title: "Inbox", StartDate: "2024-06-12", EndDate: "2024-06-12", Status: "Done", Recurring: model.RecurringDaily},
		{ID: "old", Title: "Carry over", StartDate: "2024-06-05", EndDate: "2024-06-11"},
	}
	out := Agenda(week, tasks)
	is.Equal(out, "Wed Jun 12\n  12345678 Cut · Rough Cut · 3d\n  87654321 Inbox ↻d · Done")
}
