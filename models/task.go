package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses. All external input passes through NormalizeStatus so the
// rest of the code only ever sees these three values.
const (
	StatusTodo       = "to-do"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title" validate:"required,min=2,max=200"`
	Description    string             `bson:"description" json:"description"`
	ProjectID      string             `bson:"project_id,omitempty" json:"projectId,omitempty"`
	ProjectName    string             `bson:"project_name,omitempty" json:"projectName,omitempty"`
	AssignedTo     string             `bson:"assigned_to" json:"assignedTo"`
	CreatedBy      string             `bson:"created_by" json:"createdBy"`
	Status         string             `bson:"status" json:"status"`
	Priority       string             `bson:"priority" json:"priority"`
	EstimatedHours float64            `bson:"estimated_hours" json:"estimatedHours"`
	DueDate        *time.Time         `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	StartedAt      *time.Time         `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	CompletedAt    *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// NormalizeStatus folds the status spellings seen from clients ("todo",
// "ToDo", "inprogress", ...) into the canonical constants. Unknown values
// come back as StatusTodo.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	switch s {
	case StatusTodo, "todo":
		return StatusTodo
	case StatusInProgress, "inprogress":
		return StatusInProgress
	case StatusDone, "completed", "complete":
		return StatusDone
	default:
		return StatusTodo
	}
}

// NormalizePriority folds priority input onto the canonical constants,
// defaulting to medium.
func NormalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// PriorityRank orders priorities for sorting: high=0, medium=1, low=2.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// IsOpen reports whether a task still counts toward a user's active load.
func (t Task) IsOpen() bool {
	return t.Status == StatusTodo || t.Status == StatusInProgress
}

// IsOverdue reports whether the task has a due date in the past and is not
// done.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}
