package recurrence

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"task-board/internal/dates"
	"task-board/internal/model"
)

var (
	w1 = dates.WeekOf(dates.MustParse("2024-06-10"))
	w2 = w1.Next() // 2024-06-17 .. 2024-06-23
)

func recurring(title, start, end string, mode model.Recurring) model.Task {
	desc := "notes"
	return model.Task{
		ID:          title + "-" + start,
		Title:       title,
		Description: &desc,
		StartDate:   start,
		EndDate:     end,
		Status:      "Done",
		Priority:    model.PriorityHigh,
		Recurring:   mode,
		Type:        model.TypeChecklist,
	}
}

func TestPropose_Weekly(t *testing.T) {
	is := is.New(t)

	tmpl := recurring("Standup", "2024-06-12", "2024-06-13", model.RecurringWeekly) // Wednesday
	got, err := Propose([]model.Task{tmpl}, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 1)

	inst := got[0]
	is.Equal(inst.ID, "")
	is.Equal(inst.StartDate, "2024-06-19") // W2's Wednesday
	is.Equal(inst.EndDate, "2024-06-20")
	is.Equal(inst.Status, model.DefaultStatus)
	is.Equal(inst.Priority, model.PriorityHigh)
	is.Equal(inst.Recurring, model.RecurringWeekly)
	is.Equal(inst.Type, model.TypeChecklist)
	is.Equal(inst.DescriptionText(), "notes")
	is.True(inst.Description != tmpl.Description) // copied, not shared
}

func TestPropose_WeeklySundayProjectsToLastColumn(t *testing.T) {
	is := is.New(t)

	got, err := Propose([]model.Task{recurring("Review", "2024-06-16", "2024-06-16", model.RecurringWeekly)}, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 1)
	is.Equal(got[0].StartDate, "2024-06-23")
}

func TestPropose_WeeklyIdempotent(t *testing.T) {
	is := is.New(t)

	all := []model.Task{
		recurring("Standup", "2024-06-12", "2024-06-12", model.RecurringWeekly),
		recurring("Report", "2024-06-14", "2024-06-14", model.RecurringWeekly),
		{ID: "x", Title: "Report", StartDate: "2024-06-21", EndDate: "2024-06-21", Recurring: model.RecurringNo},
	}

	first, err := Propose(all, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(first), 1) // Report already starts in W2
	is.Equal(first[0].Title, "Standup")

	again, err := Propose(all, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(again, first)

	// confirming the proposal makes a second run return nothing
	all = append(all, first...)
	after, err := Propose(all, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(after), 0)
}

func TestPropose_WeeklyOneInstancePerWeekday(t *testing.T) {
	is := is.New(t)

	all := []model.Task{
		recurring("Gym", "2024-06-03", "2024-06-03", model.RecurringWeekly), // Monday, two weeks back
		recurring("Gym", "2024-06-10", "2024-06-10", model.RecurringWeekly), // Monday, latest
		recurring("Gym", "2024-06-06", "2024-06-06", model.RecurringWeekly), // Thursday, older
		recurring("Gym", "2024-06-13", "2024-06-13", model.RecurringWeekly), // Thursday, latest
	}
	got, err := Propose(all, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 2)
	is.Equal(got[0].StartDate, "2024-06-17")
	is.Equal(got[1].StartDate, "2024-06-20")

	// once either day is on the board the title counts as done for the week
	all = append(all, got[0])
	again, err := Propose(all, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(again), 0)
}

func TestPropose_WeeklyLatestTemplatePerWeekday(t *testing.T) {
	is := is.New(t)

	older := recurring("Standup", "2024-06-05", "2024-06-05", model.RecurringWeekly)
	latest := recurring("Standup", "2024-06-12", "2024-06-13", model.RecurringWeekly)
	latest.Priority = model.PriorityLow
	got, err := Propose([]model.Task{older, latest}, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 1)
	is.Equal(got[0].StartDate, "2024-06-19")
	is.Equal(got[0].EndDate, "2024-06-20") // duration of the latest template
	is.Equal(got[0].Priority, model.PriorityLow)
}

func TestPropose_IgnoresFutureTemplatesAndOtherModes(t *testing.T) {
	is := is.New(t)

	all := []model.Task{
		recurring("Later", "2024-07-01", "2024-07-01", model.RecurringWeekly),
		recurring("Daily", "2024-06-12", "2024-06-12", model.RecurringDaily),
		recurring("Monthly", "2024-06-12", "2024-06-12", model.RecurringMonthly),
	}
	got, err := Propose(all, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(got), 0)
}

func TestPropose_Daily(t *testing.T) {
	is := is.New(t)

	all := []model.Task{
		recurring("Inbox", "2024-06-12", "2024-06-12", model.RecurringDaily),
		{ID: "mon", Title: "Inbox", StartDate: "2024-06-17", EndDate: "2024-06-17"},
		{ID: "thu", Title: "Inbox", StartDate: "2024-06-20", EndDate: "2024-06-20"},
	}
	got, err := Propose(all, w2, model.RecurringDaily)
	is.NoErr(err)
	is.Equal(len(got), 5)

	var starts []string
	for _, inst := range got {
		is.Equal(inst.StartDate, inst.EndDate) // zero-day duration kept
		is.Equal(inst.Recurring, model.RecurringDaily)
		starts = append(starts, inst.StartDate)
	}
	is.Equal(starts, []string{"2024-06-18", "2024-06-19", "2024-06-21", "2024-06-22", "2024-06-23"})

	all = append(all, got...)
	again, err := Propose(all, w2, model.RecurringDaily)
	is.NoErr(err)
	is.Equal(len(again), 0)
}

func TestPropose_DailyKeepsDuration(t *testing.T) {
	is := is.New(t)

	got, err := Propose([]model.Task{recurring("Shoot", "2024-06-10", "2024-06-11", model.RecurringDaily)}, w2, model.RecurringDaily)
	is.NoErr(err)
	is.Equal(len(got), 7)
	is.Equal(got[6].StartDate, "2024-06-23")
	is.Equal(got[6].EndDate, "2024-06-24")
}

func TestPropose_NegativeDurationClamped(t *testing.T) {
	is := is.New(t)

	got, err := Propose([]model.Task{recurring("Odd", "2024-06-12", "2024-06-10", model.RecurringWeekly)}, w2, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(got[0].StartDate, got[0].EndDate)
}

func TestPropose_Errors(t *testing.T) {
	is := is.New(t)

	_, err := Propose(nil, w2, model.RecurringMonthly)
	is.True(errors.Is(err, ErrUnsupportedMode))

	_, err = Propose([]model.Task{recurring("Broken", "2024-02-30", "2024-03-01", model.RecurringWeekly)}, w2, model.RecurringWeekly)
	is.True(errors.Is(err, dates.ErrInvalidDate))

	got, err := Propose(nil, w2, model.RecurringDaily)
	is.NoErr(err)
	is.Equal(len(got), 0)
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	good := recurring("A", "2024-06-17", "2024-06-17", model.RecurringWeekly)
	bad := good
	bad.Title = "B"
	bad.Recurring = "bogus"

	is.NoErr(Validate([]model.Task{good}))
	is.True(errors.Is(Validate(nil), ErrNoTasks))

	err := Validate([]model.Task{good, bad, good})
	is.True(errors.Is(err, model.ErrInvalidRecurring))
	is.True(strings.Contains(err.Error(), `"bogus"`))
	is.True(strings.Contains(err.Error(), "task 2"))

	blank := good
	blank.Recurring = ""
	is.NoErr(Validate([]model.Task{blank})) // defaults to "no"
}
