package model

import "time"

// Status categories, in picker order.
const (
	CategoryTodo       = "To-do"
	CategoryInProgress = "In progress"
	CategoryCompleted  = "Completed"
)

var Categories = []string{CategoryTodo, CategoryInProgress, CategoryCompleted}

// Status is referenced by Task.Status through its Name.
type Status struct {
	ID        uint      `gorm:"primaryKey" yaml:"-"`
	Name      string    `gorm:"uniqueIndex;not null" yaml:"name"`
	Color     string    `yaml:"color"`
	Hex       string    `yaml:"hex"`
	Category  string    `gorm:"index" yaml:"category"`
	CreatedAt time.Time `yaml:"-"`
}

// Color populates the color choices of a Status.
type Color struct {
	ID            uint      `gorm:"primaryKey" yaml:"-"`
	Name          string    `gorm:"not null" yaml:"name"`
	Hex           string    `gorm:"not null" yaml:"hex"`
	TailwindClass string    `yaml:"tailwind_class"`
	CreatedAt     time.Time `yaml:"-"`
}
