package duplicate

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"task-board/internal/model"
)

func TestNextTitle(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		title    string
		want     string
	}{
		{"gaps use the highest suffix", []string{"Post", "Post 2", "Post 5"}, "Post", "Post 6"},
		{"no siblings", nil, "Post", "Post 2"},
		{"source with suffix", []string{"Post", "Post 2"}, "Post 2", "Post 3"},
		{"shared prefix counts", []string{"Post", "Postcard 9"}, "Post", "Post 10"},
		{"last suffix counts", []string{"Post 2 7"}, "Post", "Post 8"},
		{"other titles ignored", []string{"Reel 40", "Post"}, "Post", "Post 2"},
		{"suffix of one", []string{"Post 1"}, "Post 1", "Post 2"},
		{"no space before digits", []string{"Post5"}, "Post", "Post 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(NextTitle(tt.existing, tt.title), tt.want)
		})
	}
}

func TestBaseTitle(t *testing.T) {
	is := is.New(t)
	is.Equal(BaseTitle("Reel 12"), "Reel")
	is.Equal(BaseTitle("Reel"), "Reel")
	is.Equal(BaseTitle("Reel 2 3"), "Reel 2")
	is.Equal(BaseTitle("2024"), "2024")
}

func TestClone(t *testing.T) {
	is := is.New(t)

	desc := `{"reel":["Facebook"]}`
	source := model.Task{
		ID:          "abc",
		Title:       "Reel 2",
		Description: &desc,
		StartDate:   "2024-06-10",
		EndDate:     "2024-06-11",
		Status:      "In Progress",
		Type:        model.TypeChecklist,
		CreatedAt:   time.Now(),
	}
	siblings := []model.Task{
		source,
		{Title: "Reel 3", Type: model.TypeChecklist},
		{Title: "Reel 9", Type: model.TypeDescriptive}, // other type does not count
	}

	clone := Clone(source, siblings)
	is.Equal(clone.Title, "Reel 4")
	is.Equal(clone.ID, "")
	is.True(clone.CreatedAt.IsZero())
	is.Equal(clone.StartDate, source.StartDate)
	is.Equal(clone.Status, source.Status)
	is.Equal(clone.DescriptionText(), desc)
	is.True(clone.Description != source.Description)
}
