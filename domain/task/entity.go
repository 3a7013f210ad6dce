package task

import (
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the recognized priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority normalizes a priority string. An empty value maps to the
// default PriorityMedium; the second return value reports whether the
// input was recognized.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityMedium, true
	}
	return p, p.Valid()
}

// Completion filter values accepted by list operations.
const (
	FilterCompleted = "completed"
	FilterPending   = "pending"
	FilterOverdue   = "overdue"
)

// Task represents a unit of trackable work.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Done        bool       `gorm:"not null;default:false" json:"done"`
	DueDate     *Date      `gorm:"type:text" json:"due_date"`
	Category    *string    `gorm:"size:100" json:"category"`
	Priority    Priority   `gorm:"size:10;not null;default:medium" json:"priority"`
	Owner       string     `gorm:"index;size:36" json:"owner,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Overdue reports whether the task is past due and not completed,
// relative to the given day.
func (t *Task) Overdue(today Date) bool {
	return !t.Done && t.DueDate != nil && t.DueDate.Before(today)
}
