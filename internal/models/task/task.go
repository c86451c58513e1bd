package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ProjectID   uuid.UUID   `json:"project"`
	Status      Status      `json:"status"`
	Priority    Priority    `json:"priority"`
	AssignedTo  *uuid.UUID  `json:"assigned_to,omitempty"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Position    int         `json:"position"`
	Tags        []string    `json:"tags"`
	Comments    []uuid.UUID `json:"comments"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

type Status string
type Priority string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in-progress"
const StatusReview Status = "review"
const StatusDone Status = "done"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"
const PriorityUrgent Priority = "urgent"

// колонки доски в порядке отображения
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	if t.AssignedTo != nil {
		id := *t.AssignedTo
		out.AssignedTo = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		out.UpdatedAt = &u
	}
	out.Tags = append([]string(nil), t.Tags...)
	out.Comments = append([]uuid.UUID(nil), t.Comments...)
	return &out
}
