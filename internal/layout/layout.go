// Package layout places tasks on a week grid without visual collisions.
//
// Placement is a greedy first-fit over per-column occupancy: tasks are sorted
// so single-day cards fill gaps first, then each task takes the lowest row
// that is free in every column it spans.
package layout

import (
	"sort"

	"task-board/internal/dates"
	"task-board/internal/model"
)

const Columns = 7

// Options controls the vertical geometry of a week row.
type Options struct {
	TopMargin int // offset of the first row
	RowStep   int // distance between rows; also the collision window
	RowHeight int // rendered card height, clamped to RowStep
	MinHeight int // floor for the reported container height
}

func DefaultOptions() Options {
	return Options{TopMargin: 8, RowStep: 70, RowHeight: 60, MinHeight: 200}
}

// Placement is the visual position of one task.
type Placement struct {
	TaskID      string
	Top         int
	Height      int
	StartColumn int
	ColumnSpan  int
	Row         int
}

// Columns lists the week columns the placement covers.
func (p Placement) Columns() []int {
	cols := make([]int, 0, p.ColumnSpan)
	for c := p.StartColumn; c < p.StartColumn+p.ColumnSpan && c < Columns; c++ {
		cols = append(cols, c)
	}
	return cols
}

// Layout is the result for one week.
type Layout struct {
	Week       dates.Week
	Placements []Placement
	Height     int
	index      map[string]int
}

// Lookup returns the placement of a task, if it was laid out.
func (l Layout) Lookup(taskID string) (Placement, bool) {
	i, ok := l.index[taskID]
	if !ok {
		return Placement{}, false
	}
	return l.Placements[i], true
}

// Rows is the number of distinct rows in use.
func (l Layout) Rows() int {
	rows := 0
	for _, p := range l.Placements {
		if p.Row+1 > rows {
			rows = p.Row + 1
		}
	}
	return rows
}

// InWeek reports whether the task's range overlaps the week.
func InWeek(t model.Task, w dates.Week) bool {
	return (t.StartDate >= w.Start && t.StartDate <= w.End) ||
		(t.EndDate >= w.Start && t.EndDate <= w.End) ||
		(t.StartDate <= w.Start && t.EndDate >= w.End)
}

// Filter returns the tasks that overlap the week, keeping input order.
func Filter(tasks []model.Task, w dates.Week) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if InWeek(t, w) {
			out = append(out, t)
		}
	}
	return out
}

type candidate struct {
	task  model.Task
	span  int
	start int
	cols  int
}

// Compute lays out the tasks of one week. Tasks that do not overlap the
// week, or whose start date is outside it, are left out of the result.
func Compute(w dates.Week, tasks []model.Task, opts Options) Layout {
	if opts.RowStep <= 0 {
		opts = DefaultOptions()
	}
	if opts.RowHeight > opts.RowStep {
		opts.RowHeight = opts.RowStep
	}

	var cands []candidate
	for _, t := range Filter(tasks, w) {
		start := w.Index(t.StartDate)
		if start < 0 {
			continue
		}
		end := w.Index(t.EndDate)
		if end < 0 {
			end = Columns - 1
		}
		cols := end - start + 1
		if cols < 1 {
			cols = 1
		}
		span, err := dates.Span(t.StartDate, t.EndDate)
		if err != nil || span < 1 {
			span = 1
		}
		cands = append(cands, candidate{task: t, span: span, start: start, cols: cols})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].span, cands[j].span
		if a == 1 && b > 1 {
			return true
		}
		if a > 1 && b == 1 {
			return false
		}
		return a < b
	})

	occupancy := make([][]int, Columns)
	out := Layout{
		Week:       w,
		Placements: make([]Placement, 0, len(cands)),
		index:      make(map[string]int, len(cands)),
	}
	for _, c := range cands {
		top := opts.TopMargin
		for !free(occupancy, c.start, c.cols, top, opts.RowStep) {
			top += opts.RowStep
		}
		for col := c.start; col < c.start+c.cols && col < Columns; col++ {
			occupancy[col] = append(occupancy[col], top)
		}
		out.index[c.task.ID] = len(out.Placements)
		out.Placements = append(out.Placements, Placement{
			TaskID:      c.task.ID,
			Top:         top,
			Height:      opts.RowHeight,
			StartColumn: c.start,
			ColumnSpan:  c.cols,
			Row:         (top - opts.TopMargin) / opts.RowStep,
		})
	}

	out.Height = opts.MinHeight
	for _, p := range out.Placements {
		if h := p.Top + p.Height; h > out.Height {
			out.Height = h
		}
	}
	return out
}

func free(occupancy [][]int, start, cols, top, step int) bool {
	for col := start; col < start+cols && col < Columns; col++ {
		for _, o := range occupancy[col] {
			if abs(o-top) < step {
				return false
			}
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
