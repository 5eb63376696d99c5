package duplicate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"task-board/internal/model"
)

var suffix = regexp.MustCompile(` (\d+)$`)

// BaseTitle strips a trailing " <digits>" suffix.
func BaseTitle(title string) string {
	return suffix.ReplaceAllString(title, "")
}

// NextTitle returns "{base} {n}" where n is one past the highest numeric
// suffix among existing titles starting with the base title, and at least 2.
// "Postcard 9" counts for "Post" and makes the next copy "Post 10".
func NextTitle(existing []string, title string) string {
	base := BaseTitle(title)
	highest := 1
	for _, t := range existing {
		if !strings.HasPrefix(t, base) {
			continue
		}
		m := suffix.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return base + " " + strconv.Itoa(highest+1)
}

// Clone returns a copy of source named after its siblings of the same type.
// The copy has no ID or timestamps and is not persisted.
func Clone(source model.Task, siblings []model.Task) model.Task {
	titles := make([]string, 0, len(siblings))
	for _, s := range siblings {
		if s.Type == source.Type {
			titles = append(titles, s.Title)
		}
	}

	clone := source
	clone.ID = ""
	clone.Title = NextTitle(titles, source.Title)
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	if source.Description != nil {
		d := *source.Description
		clone.Description = &d
	}
	return clone
}
