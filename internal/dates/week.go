package dates

import "time"

// Week is a Monday-first run of seven canonical dates. The zero Week holds
// no dates: Shift returns it unchanged and Label is empty.
type Week struct {
	Start string
	End   string
	Days  [7]string
}

// WeekOf returns the week containing t.
func WeekOf(t time.Time) Week {
	var w Week
	for i, d := range WeekDays(t) {
		w.Days[i] = Format(d)
	}
	w.Start = w.Days[0]
	w.End = w.Days[6]
	return w
}

// WeekOfString returns the week containing the canonical date s.
func WeekOfString(s string) (Week, error) {
	t, err := Parse(s)
	if err != nil {
		return Week{}, err
	}
	return WeekOf(t), nil
}

// Index returns the column of date within the week, or -1.
func (w Week) Index(date string) int {
	for i, d := range w.Days {
		if d == date {
			return i
		}
	}
	return -1
}

// Contains reports whether date falls inside the week.
func (w Week) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// Shift returns the week n weeks away.
func (w Week) Shift(n int) Week {
	t, err := Parse(w.Start)
	if err != nil {
		return Week{}
	}
	return WeekOf(t.AddDate(0, 0, 7*n))
}

func (w Week) Next() Week { return w.Shift(1) }
func (w Week) Prev() Week { return w.Shift(-1) }

// Label renders the week as "Jan 2 - Jan 8".
func (w Week) Label() string {
	start, err := Parse(w.Start)
	if err != nil {
		return ""
	}
	end, err := Parse(w.End)
	if err != nil {
		return ""
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}
