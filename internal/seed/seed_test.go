package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"task-board/internal/model"
	"task-board/internal/repository"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)

	statuses, err := DefaultStatuses()
	is.NoErr(err)
	is.Equal(len(statuses), 19)

	byCategory := make(map[string]int)
	names := make(map[string]bool)
	for _, st := range statuses {
		is.True(st.Hex != "")
		is.True(st.Color != "")
		byCategory[st.Category]++
		is.True(!names[st.Name]) // names are unique
		names[st.Name] = true
	}
	is.Equal(byCategory[model.CategoryTodo], 6)
	is.Equal(byCategory[model.CategoryInProgress], 11)
	is.Equal(byCategory[model.CategoryCompleted], 2)
	is.True(names[model.DefaultStatus])

	colors, err := DefaultColors()
	is.NoErr(err)
	hexes := make(map[string]string)
	for _, c := range colors {
		hexes[c.Hex] = c.TailwindClass
	}
	for _, st := range statuses {
		is.Equal(hexes[st.Hex] != "", true) // every status color is offered
	}
	is.Equal(hexes["#9ca3af"], "bg-gray-400")
}

func TestSeedOnlyEmptyTables(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "seed.db"))
	is.NoErr(err)
	statuses := repository.NewStatusRepository(db)
	colors := repository.NewColorRepository(db)

	res, err := Seed(ctx, statuses, colors)
	is.NoErr(err)
	is.Equal(res.Statuses, 19)
	is.Equal(res.Colors, 9)

	res, err = Seed(ctx, statuses, colors)
	is.NoErr(err)
	is.Equal(res, Result{})

	st, err := statuses.FindByName(ctx, "Search BGM & Trim SFX")
	is.NoErr(err)
	is.Equal(st.Category, model.CategoryTodo)
}
