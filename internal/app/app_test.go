package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"task-board/internal/config"
	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/service"
)

func testConfig(t *testing.T, seed bool) config.Config {
	return config.Config{
		DatabaseURL:  filepath.Join(t.TempDir(), "data", "board.db"),
		SeedDefaults: seed,
		Recurrence:   config.RecurrenceConfig{LookbackWeeks: 4},
	}
}

func TestOpen_SeedsOnce(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig(t, true)

	a, err := Open(ctx, cfg, log)
	is.NoErr(err)
	n, err := a.StatusRepo.Count(ctx)
	is.NoErr(err)
	is.True(n > 0)
	is.NoErr(a.Close())

	a, err = Open(ctx, cfg, log)
	is.NoErr(err)
	defer a.Close()
	again, err := a.StatusRepo.Count(ctx)
	is.NoErr(err)
	is.Equal(again, n)

	res, err := a.Seed(ctx)
	is.NoErr(err)
	is.Equal(res.Statuses, 0)
	is.Equal(res.Colors, 0)
}

func TestOpen_RecurringRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	a, err := Open(ctx, testConfig(t, false), slog.New(slog.NewTextHandler(io.Discard, nil)))
	is.NoErr(err)
	defer a.Close()

	_, err = a.Tasks.CreateTask(ctx, service.TaskInput{
		Title:     "Standup",
		StartDate: "2024-06-12",
		EndDate:   "2024-06-12",
		Recurring: model.RecurringWeekly,
	})
	is.NoErr(err)

	next := dates.WeekOf(dates.MustParse("2024-06-17"))
	proposed, err := a.Recurrence.Propose(ctx, next, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(proposed), 1)
	is.Equal(proposed[0].StartDate, "2024-06-19")

	created, err := a.Recurrence.Materialize(ctx, proposed)
	is.NoErr(err)
	is.Equal(len(created), 1)
	is.True(created[0].ID != "")

	again, err := a.Recurrence.Propose(ctx, next, model.RecurringWeekly)
	is.NoErr(err)
	is.Equal(len(again), 0)
}

func TestNewLogger(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	is.True(NewLogger("DEBUG").Enabled(ctx, slog.LevelDebug))
	is.True(!NewLogger("INFO").Enabled(ctx, slog.LevelDebug))
	is.True(!NewLogger("ERROR").Enabled(ctx, slog.LevelInfo))
	is.True(NewLogger("verbose").Enabled(ctx, slog.LevelInfo))
}
