package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultStatus is assigned to new tasks and recurring instances.
const DefaultStatus = "Not started"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Recurring string

const (
	RecurringNo      Recurring = "no"
	RecurringDaily   Recurring = "daily"
	RecurringWeekly  Recurring = "weekly"
	RecurringMonthly Recurring = "monthly"
)

func (r Recurring) Valid() bool {
	switch r {
	case RecurringNo, RecurringDaily, RecurringWeekly, RecurringMonthly:
		return true
	}
	return false
}

// TaskType selects how a task card is rendered. Empty means descriptive.
type TaskType string

const (
	TypeDescriptive TaskType = "descriptive"
	TypeChecklist   TaskType = "checklist"
)

func (t TaskType) Valid() bool {
	switch t {
	case "", TypeDescriptive, TypeChecklist:
		return true
	}
	return false
}

// Task is a card on the week grid. Dates are canonical YYYY-MM-DD strings.
type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	Description *string
	StartDate   string    `gorm:"size:10;index;not null"`
	EndDate     string    `gorm:"size:10;index;not null"`
	Status      string    `gorm:"default:'Not started'"`
	Priority    Priority  `gorm:"size:8;default:'medium'"`
	Recurring   Recurring `gorm:"size:8;default:'no'"`
	Type        TaskType  `gorm:"size:16"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns the opaque identifier.
func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ShortID is the prefix used to reference a task in chat commands.
func (t Task) ShortID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}

func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TaskPatch carries the fields of a partial update. Nil fields are left as is.
type TaskPatch struct {
	Title       *string
	Description *string
	StartDate   *string
	EndDate     *string
	Status      *string
	Priority    *Priority
	Recurring   *Recurring
	Type        *TaskType
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	return t
}

// Columns maps the set fields to column names for gorm Updates.
func (p TaskPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		cols["end_date"] = *p.EndDate
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.Priority != nil {
		cols["priority"] = string(*p.Priority)
	}
	if p.Recurring != nil {
		cols["recurring"] = string(*p.Recurring)
	}
	if p.Type != nil {
		cols["type"] = string(*p.Type)
	}
	return cols
}

func (p TaskPatch) Empty() bool {
	return len(p.Columns()) == 0
}
