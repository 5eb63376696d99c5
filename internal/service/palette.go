package service

import (
	"math"
	"sort"
	"strings"

	"task-board/internal/model"
)

// Fallback is used for task statuses missing from the palette.
var Fallback = model.Status{Name: model.DefaultStatus, Color: "bg-gray-400", Hex: "#9ca3af", Category: model.CategoryTodo}

// Uncategorized groups statuses with a blank category.
const Uncategorized = "Uncategorized"

// Palette resolves status names to their display colors.
type Palette struct {
	statuses   []model.Status
	byName     map[string]model.Status
	colorOrder map[string]int
}

func NewPalette(statuses []model.Status) Palette {
	p := Palette{statuses: statuses, byName: make(map[string]model.Status, len(statuses))}
	for _, st := range statuses {
		p.byName[st.Name] = st
	}
	return p
}

// Lookup returns the named status, or Fallback carrying the name when the
// status is unknown.
func (p Palette) Lookup(name string) (model.Status, bool) {
	if st, ok := p.byName[name]; ok {
		return st, true
	}
	fb := Fallback
	fb.Name = name
	return fb, false
}

// WithColorOrder returns a palette whose groups list statuses in the order
// of their color class in colors, then by name.
func (p Palette) WithColorOrder(colors []model.Color) Palette {
	p.colorOrder = make(map[string]int, len(colors))
	for i, c := range colors {
		if _, ok := p.colorOrder[c.TailwindClass]; !ok {
			p.colorOrder[c.TailwindClass] = i
		}
	}
	return p
}

func (p Palette) Hex(name string) string {
	st, _ := p.Lookup(name)
	return st.Hex
}

type StatusGroup struct {
	Category string
	Statuses []model.Status
}

// Groups orders statuses by the fixed categories, then any other category by
// name. Inside a group statuses sort by color order, then name.
func (p Palette) Groups() []StatusGroup {
	index := make(map[string]int)
	var groups []StatusGroup
	for _, c := range model.Categories {
		index[c] = len(groups)
		groups = append(groups, StatusGroup{Category: c})
	}
	for _, st := range p.statuses {
		c := strings.TrimSpace(st.Category)
		if c == "" {
			c = Uncategorized
		}
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, StatusGroup{Category: c})
		}
		groups[i].Statuses = append(groups[i].Statuses, st)
	}

	extra := groups[len(model.Categories):]
	sort.Slice(extra, func(i, j int) bool { return extra[i].Category < extra[j].Category })

	out := groups[:0]
	for _, g := range groups {
		if len(g.Statuses) == 0 {
			continue
		}
		sort.SliceStable(g.Statuses, func(i, j int) bool {
			a, b := p.rank(g.Statuses[i]), p.rank(g.Statuses[j])
			if a != b {
				return a < b
			}
			return g.Statuses[i].Name < g.Statuses[j].Name
		})
		out = append(out, g)
	}
	return out
}

func (p Palette) rank(st model.Status) int {
	if i, ok := p.colorOrder[st.Color]; ok {
		return i
	}
	return math.MaxInt
}

func (p Palette) Len() int {
	return len(p.statuses)
}
