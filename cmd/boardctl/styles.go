package main

import (
	"github.com/charmbracelet/lipgloss"

	"task-board/internal/model"
	"task-board/internal/service"
)

const (
	textDark  = lipgloss.Color("#111")
	textFaded = lipgloss.Color("#888")
	errorRed  = lipgloss.Color("#c42912")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	fadedStyle  = lipgloss.NewStyle().Foreground(textFaded)
	errorStyle  = lipgloss.NewStyle().Foreground(errorRed).Bold(true)
)

// taskStyle paints a grid cell with the background of the task's status.
func taskStyle(palette service.Palette) func(model.Task, string) string {
	return func(task model.Task, cell string) string {
		return lipgloss.NewStyle().
			Foreground(textDark).
			Background(lipgloss.Color(palette.Hex(task.Status))).
			Render(cell)
	}
}

// swatch renders a short block in the given hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}
