package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	rep "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NewTask struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      task.Status
	Priority    task.Priority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	Tags        []string
}

// TaskPatch - частичное обновление задачи. AssignedTo со значением uuid.Nil снимает исполнителя.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *task.Status
	Priority    *task.Priority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	Tags        *[]string
}

type TaskService struct {
	tasks    TaskRepository
	projects ProjectRepository
	now      func() time.Time
}

func NewTaskService(tasks TaskRepository, projects ProjectRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		now:      time.Now,
	}
}

func loadTask(ctx context.Context, tasks TaskRepository, id uuid.UUID) (*task.Task, error) {
	t, err := tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceTask, id.String())
		}
		return nil, internalError("получение задачи", err, zap.String("task_id", id.String()))
	}
	return t, nil
}

// loadTaskWithAccess: задача -> её проект -> доступ к проекту, именно в таком порядке
func (s *TaskService) loadTaskWithAccess(ctx context.Context, actorID, taskID uuid.UUID, action string) (*task.Task, *project.Project, error) {
	t, err := loadTask(ctx, s.tasks, taskID)
	if err != nil {
		return nil, nil, err
	}
	p, err := loadProject(ctx, s.projects, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !access.HasProjectAccess(p, actorID) {
		return nil, nil, NewForbidden(action)
	}
	return t, p, nil
}

func checkAssignee(p *project.Project, assignee *uuid.UUID) error {
	if assignee == nil || *assignee == uuid.Nil {
		return nil
	}
	if !access.IsAssignable(p, *assignee) {
		return NewInvalidAssignee(assignee.String())
	}
	return nil
}

func validateStatus(status task.Status) error {
	if !status.Valid() {
		return NewInvalidStatus(string(status))
	}
	return nil
}

func validatePriority(priority task.Priority) error {
	if !priority.Valid() {
		return NewValidationError("priority", "допустимо low, medium, high или urgent")
	}
	return nil
}

// nextPosition выдаёт позицию больше любой существующей и любой ранее выданной,
// так что позиции удалённых задач не переиспользуются
func (s *TaskService) nextPosition(ctx context.Context, p *project.Project) (int, error) {
	maxPos, err := s.tasks.MaxPosition(ctx, p.ID)
	if err != nil {
		return 0, err
	}
	position := maxPos + 1
	if p.TaskSeq > position {
		position = p.TaskSeq
	}
	return position, nil
}

func (s *TaskService) CreateTask(ctx context.Context, actorID uuid.UUID, input NewTask) (*task.Task, error) {
	if input.ProjectID == uuid.Nil {
		return nil, NewValidationError("project", "пустое значение")
	}

	p, err := loadProject(ctx, s.projects, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !access.HasProjectAccess(p, actorID) {
		return nil, NewForbidden("создание задачи")
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, NewValidationError("title", "пустое значение")
	}
	if input.Status != "" {
		if err := validateStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if input.Priority != "" {
		if err := validatePriority(input.Priority); err != nil {
			return nil, err
		}
	}
	if err := checkAssignee(p, input.AssignedTo); err != nil {
		return nil, err
	}

	position, err := s.nextPosition(ctx, p)
	if err != nil {
		return nil, internalError("вычисление позиции", err, zap.String("project_id", p.ID.String()))
	}

	t := task.New(p.ID, actorID, input.Title,
		task.WithDescription(strings.TrimSpace(input.Description)),
		task.WithStatus(input.Status),
		task.WithPriority(input.Priority),
		task.WithAssignee(input.AssignedTo),
		task.WithDueDate(input.DueDate),
		task.WithTags(input.Tags),
		task.WithPosition(position),
	)
	t.CreatedAt = s.now()

	if err := s.projects.BumpTaskSeq(ctx, p.ID, position+1); err != nil {
		return nil, internalError("резервирование позиции", err, zap.String("project_id", p.ID.String()))
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, internalError("создание задачи", err, zap.String("project_id", p.ID.String()))
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.String("project_id", p.ID.String()),
		zap.Int("position", t.Position))
	return t, nil
}

func (s *TaskService) GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*task.Task, error) {
	t, _, err := s.loadTaskWithAccess(ctx, actorID, taskID, "просмотр задачи")
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context, actorID uuid.UUID, filter TaskFilter) ([]*task.Task, error) {
	p, err := loadProject(ctx, s.projects, filter.ProjectID)
	if err != nil {
		return nil, err
	}
	if !access.HasProjectAccess(p, actorID) {
		return nil, NewForbidden("просмотр задач проекта")
	}
	if filter.Status != nil {
		if err := validateStatus(*filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Priority != nil {
		if err := validatePriority(*filter.Priority); err != nil {
			return nil, err
		}
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, internalError("получение задач", err, zap.String("project_id", p.ID.String()))
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, patch TaskPatch) (*task.Task, error) {
	t, p, err := s.loadTaskWithAccess(ctx, actorID, taskID, "изменение задачи")
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, NewValidationError("title", "пустое значение")
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return nil, err
		}
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return nil, err
		}
		t.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		if err := checkAssignee(p, patch.AssignedTo); err != nil {
			return nil, err
		}
		if *patch.AssignedTo == uuid.Nil {
			t.AssignedTo = nil
		} else {
			id := *patch.AssignedTo
			t.AssignedTo = &id
		}
	}
	if patch.DueDate != nil {
		if patch.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			d := *patch.DueDate
			t.DueDate = &d
		}
	}
	if patch.Tags != nil {
		t.Tags = task.NormalizeTags(*patch.Tags)
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, s.writeError("обновление задачи", taskID, err)
	}
	return t, nil
}

// UpdateStatus - узкая операция для перетаскивания между колонками
func (s *TaskService) UpdateStatus(ctx context.Context, actorID, taskID uuid.UUID, status task.Status) (*task.Task, error) {
	t, _, err := s.loadTaskWithAccess(ctx, actorID, taskID, "изменение статуса")
	if err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	t.Status = status
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, s.writeError("обновление статуса", taskID, err)
	}
	return t, nil
}

// UpdatePosition записывает позицию как есть: соседние задачи не перенумеровываются,
// согласованный порядок считает клиент. Конфликты параллельных записей не
// обнаруживаются, побеждает последняя запись.
func (s *TaskService) UpdatePosition(ctx context.Context, actorID, taskID uuid.UUID, position *int, status *task.Status) (*task.Task, error) {
	t, _, err := s.loadTaskWithAccess(ctx, actorID, taskID, "изменение позиции")
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, NewValidationError("position", "не указана позиция")
	}
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, err
		}
		t.Status = *status
	}

	t.Position = *position
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, s.writeError("обновление позиции", taskID, err)
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error {
	t, err := loadTask(ctx, s.tasks, taskID)
	if err != nil {
		return err
	}
	p, err := loadProject(ctx, s.projects, t.ProjectID)
	if err != nil {
		return err
	}
	if !access.CanDeleteTask(t, p, actorID) {
		return NewForbidden("удаление задачи")
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return s.writeError("удаление задачи", taskID, err)
	}

	logger.Info("Service: Задача удалена",
		zap.String("task_id", taskID.String()),
		zap.String("actor_id", actorID.String()))
	return nil
}

// запись могла не найти задачу, если её удалили между чтением и записью
func (s *TaskService) writeError(operation string, taskID uuid.UUID, err error) error {
	if errors.Is(err, rep.ErrNotFound) {
		return NewNotFound(ResourceTask, taskID.String())
	}
	return internalError(operation, err, zap.String("task_id", taskID.String()))
}
