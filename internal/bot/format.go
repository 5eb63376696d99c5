package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode"

	"task-board/internal/checklist"
	"task-board/internal/dates"
	"task-board/internal/model"
	"task-board/internal/service"
)

func escape(s string) string {
	return html.EscapeString(s)
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

// parseDateInput accepts YYYY-MM-DD, "today", "tomorrow" and "+N" days
// relative to now.
func parseDateInput(text string, now time.Time) (string, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	today := dates.Format(now)
	switch {
	case text == "" || text == "today":
		return today, nil
	case text == "tomorrow":
		return dates.AddDays(today, 1)
	case strings.HasPrefix(text, "+"):
		n, err := strconv.Atoi(text[1:])
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: %q", dates.ErrInvalidDate, text)
		}
		return dates.AddDays(today, n)
	}
	if _, err := dates.Parse(text); err != nil {
		return "", err
	}
	return text, nil
}

// parseDuration reads a day count; "1" means a single-day task.
func parseDuration(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(text)), "d")))
	if err != nil || n < 1 || n > 365 {
		return 0, fmt.Errorf("duration must be a number of days between 1 and 365")
	}
	return n, nil
}

func parseRecurring(text string) (model.Recurring, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "no", "none", "-", strings.ToLower(btnNoRepeat):
		return model.RecurringNo, true
	case "daily", strings.ToLower(btnDaily):
		return model.RecurringDaily, true
	case "weekly", strings.ToLower(btnWeekly):
		return model.RecurringWeekly, true
	case "monthly", strings.ToLower(btnMonthly):
		return model.RecurringMonthly, true
	}
	return "", false
}

func recurringLabel(r model.Recurring) string {
	switch r {
	case model.RecurringDaily:
		return "every day"
	case model.RecurringWeekly:
		return "every week"
	case model.RecurringMonthly:
		return "every month"
	}
	return "once"
}

func categoryIcon(category string) string {
	switch category {
	case model.CategoryTodo:
		return "⚪"
	case model.CategoryInProgress:
		return "🟡"
	case model.CategoryCompleted:
		return "🟢"
	}
	return "🏷️"
}

func formatTaskCard(task model.Task, palette service.Palette) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📌 <b>%s</b> <code>%s</code>\n", escape(normalizeTitle(task.Title)), task.ShortID()))

	span, err := dates.Span(task.StartDate, task.EndDate)
	if err != nil || span < 1 {
		span = 1
	}
	if span == 1 {
		b.WriteString(fmt.Sprintf("• <b>Date:</b> %s\n", task.StartDate))
	} else {
		b.WriteString(fmt.Sprintf("• <b>Dates:</b> %s → %s (%d days)\n", task.StartDate, task.EndDate, span))
	}

	st, known := palette.Lookup(task.Status)
	status := escape(task.Status)
	if !known {
		status += " <i>(not in palette)</i>"
	}
	b.WriteString(fmt.Sprintf("• <b>Status:</b> %s %s <code>%s</code>\n", categoryIcon(st.Category), status, st.Hex))
	b.WriteString(fmt.Sprintf("• <b>Priority:</b> %s\n", task.Priority))
	b.WriteString(fmt.Sprintf("• <b>Repeats:</b> %s\n", recurringLabel(task.Recurring)))

	if task.Type == model.TypeChecklist {
		state := checklist.Parse(task.DescriptionText())
		for _, def := range checklist.Definitions {
			b.WriteString(fmt.Sprintf("\n☑️ <b>%s</b> %d%%\n", escape(def.Label), state.Progress(def.Key)))
			for _, p := range def.Platforms {
				mark := "▫️"
				if state.Checked(def.Key, p) {
					mark = "✅"
				}
				b.WriteString(fmt.Sprintf("   %s %s\n", mark, escape(p)))
			}
		}
	} else if desc := strings.TrimSpace(task.DescriptionText()); desc != "" {
		b.WriteString(fmt.Sprintf("• <b>Notes:</b> %s\n", escape(desc)))
	}
	return strings.TrimSpace(b.String())
}

func formatProposal(mode model.Recurring, week dates.Week, tasks []model.Task) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("♻️ <b>%s tasks for %s</b>\n", normalizeTitle(string(mode)), escape(week.Label())))
	if len(tasks) == 0 {
		b.WriteString("Nothing to add, every recurring task is already on the board.")
		return b.String()
	}
	for _, t := range tasks {
		start := dates.MustParse(t.StartDate)
		b.WriteString(fmt.Sprintf("• %s %s · %s\n", start.Weekday().String()[:3], t.StartDate, escape(shortTitle(t.Title, 40))))
	}
	b.WriteString(fmt.Sprintf("\nAdd %d task(s)?", len(tasks)))
	return b.String()
}

func formatStatuses(palette service.Palette) string {
	groups := palette.Groups()
	if len(groups) == 0 {
		return "No statuses yet. Seed the defaults with <code>boardctl seed</code>."
	}
	var b strings.Builder
	b.WriteString("🎨 <b>Statuses</b>\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("\n%s <b>%s</b>\n", categoryIcon(g.Category), escape(g.Category)))
		for _, st := range g.Statuses {
			b.WriteString(fmt.Sprintf("• %s <code>%s</code>\n", escape(st.Name), escape(st.Hex)))
		}
	}
	return strings.TrimSpace(b.String())
}

// splitRef separates the task reference from the rest of the arguments.
func splitRef(args string) (string, string) {
	args = strings.TrimSpace(args)
	ref, rest, _ := strings.Cut(args, " ")
	return ref, strings.TrimSpace(rest)
}
