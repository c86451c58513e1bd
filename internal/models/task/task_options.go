package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskOption func(*Task)

// создание задачи со значениями по умолчанию, nil-опции пропускаются
func New(projectID, createdBy uuid.UUID, title string, options ...TaskOption) *Task {
	t := &Task{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		ProjectID: projectID,
		CreatedBy: createdBy,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		Tags:      []string{},
		Comments:  []uuid.UUID{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func WithDescription(description string) TaskOption {
	if description == "" {
		return nil
	}
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(task *Task) {
		task.Status = status
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithAssignee(userID *uuid.UUID) TaskOption {
	if userID == nil || *userID == uuid.Nil {
		return nil
	}
	id := *userID
	return func(task *Task) {
		task.AssignedTo = &id
	}
}

func WithDueDate(dueDate *time.Time) TaskOption {
	if dueDate == nil || dueDate.IsZero() {
		return nil
	}
	d := *dueDate
	return func(task *Task) {
		task.DueDate = &d
	}
}

func WithTags(tags []string) TaskOption {
	if len(tags) == 0 {
		return nil
	}
	return func(task *Task) {
		task.Tags = NormalizeTags(tags)
	}
}

func WithPosition(position int) TaskOption {
	return func(task *Task) {
		task.Position = position
	}
}

// обрезка пробелов, удаление пустых тегов и дубликатов с сохранением порядка
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
