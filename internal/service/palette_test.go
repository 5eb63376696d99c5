package service

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"task-board/internal/model"
)

func TestPalette_LookupFallback(t *testing.T) {
	is := is.New(t)
	p := NewPalette([]model.Status{{Name: "Done", Hex: "#22c55e", Category: model.CategoryCompleted}})

	st, ok := p.Lookup("Done")
	is.True(ok)
	is.Equal(st.Hex, "#22c55e")

	st, ok = p.Lookup("Archived")
	is.True(!ok)
	is.Equal(st.Name, "Archived")
	is.Equal(st.Hex, "#9ca3af")
	is.Equal(p.Hex("Archived"), "#9ca3af")
}

func TestPalette_Groups(t *testing.T) {
	is := is.New(t)
	p := NewPalette([]model.Status{
		{Name: "Done", Category: model.CategoryCompleted},
		{Name: "Custom", Category: "Backlog"},
		{Name: "Later", Category: model.CategoryTodo},
		{Name: "Pending", Category: model.CategoryTodo},
	})

	groups := p.Groups()
	is.Equal(len(groups), 3)
	is.Equal(groups[0].Category, model.CategoryTodo)
	is.Equal(len(groups[0].Statuses), 2)
	is.Equal(groups[0].Statuses[0].Name, "Later")
	is.Equal(groups[1].Category, model.CategoryCompleted)
	is.Equal(groups[2].Category, "Backlog")
}

func TestPalette_GroupsExtraCategoriesByName(t *testing.T) {
	is := is.New(t)
	p := NewPalette([]model.Status{
		{Name: "Someday", Category: "Backlog"},
		{Name: "Old", Category: "Archive"},
		{Name: "Loose"},
		{Name: "Done", Category: model.CategoryCompleted},
	})

	var cats []string
	for _, g := range p.Groups() {
		cats = append(cats, g.Category)
	}
	is.Equal(cats, []string{model.CategoryCompleted, "Archive", "Backlog", Uncategorized})
}

func TestPalette_GroupsByColorOrder(t *testing.T) {
	is := is.New(t)
	p := NewPalette([]model.Status{
		{Name: "Alpha", Color: "bg-red-500", Category: model.CategoryTodo},
		{Name: "Beta", Color: "bg-blue-500", Category: model.CategoryTodo},
		{Name: "Gamma", Color: "bg-unknown", Category: model.CategoryTodo},
		{Name: "Loose"},
	}).WithColorOrder([]model.Color{{TailwindClass: "bg-blue-500"}, {TailwindClass: "bg-red-500"}})

	groups := p.Groups()
	is.Equal(len(groups), 2)
	var names []string
	for _, st := range groups[0].Statuses {
		names = append(names, st.Name)
	}
	is.Equal(names, []string{"Beta", "Alpha", "Gamma"})
	is.Equal(groups[1].Category, Uncategorized)
}

func TestStatusService_ColorFromHex(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	colors := &memColors{}
	svc := NewStatusService(&memStatuses{}, colors)

	_, err := svc.CreateColor(ctx, "Green", "#22C55E", "bg-green-500")
	is.NoErr(err)

	st, err := svc.CreateStatus(ctx, StatusInput{Name: "Shipped", Color: "bg-old", Hex: "#22c55e", Category: model.CategoryCompleted})
	is.NoErr(err)
	is.Equal(st.Color, "bg-green-500") // taken from the matching color

	st, err = svc.CreateStatus(ctx, StatusInput{Name: "Odd", Color: "bg-teal-500", Hex: "#14b8a6", Category: model.CategoryTodo})
	is.NoErr(err)
	is.Equal(st.Color, "bg-teal-500")

	updated, err := svc.UpdateStatus(ctx, st.ID, StatusInput{Name: "Odd", Color: "bg-teal-500", Hex: "#22c55e", Category: model.CategoryTodo})
	is.NoErr(err)
	is.Equal(updated.Color, "bg-green-500")

	palette, err := svc.Palette(ctx)
	is.NoErr(err)
	is.Equal(palette.Len(), 2)
}

func TestStatusService_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input StatusInput
		want  error
	}{
		{"missing name", StatusInput{Color: "bg-x", Hex: "#000000", Category: model.CategoryTodo}, ErrMissingFields},
		{"missing category", StatusInput{Name: "x", Color: "bg-x", Hex: "#000000"}, ErrMissingFields},
		{"missing color", StatusInput{Name: "x", Hex: "#000000", Category: model.CategoryTodo}, ErrMissingFields},
		{"bad hex", StatusInput{Name: "x", Color: "bg-x", Hex: "green", Category: model.CategoryTodo}, ErrInvalidHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			statuses := &memStatuses{}
			_, err := NewStatusService(statuses, &memColors{}).CreateStatus(context.Background(), tt.input)
			is.True(errors.Is(err, tt.want))
			is.Equal(len(statuses.items), 0)
		})
	}
}
