package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/comment"
	rep "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	comments CommentRepository
	tasks    TaskRepository
	projects ProjectRepository
	now      func() time.Time
}

func NewCommentService(comments CommentRepository, tasks TaskRepository, projects ProjectRepository) *CommentService {
	return &CommentService{
		comments: comments,
		tasks:    tasks,
		projects: projects,
		now:      time.Now,
	}
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", NewValidationError("content", "пустое значение")
	}
	return content, nil
}

func (s *CommentService) loadComment(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceComment, id.String())
		}
		return nil, internalError("получение комментария", err, zap.String("comment_id", id.String()))
	}
	return c, nil
}

func (s *CommentService) CreateComment(ctx context.Context, actorID, taskID uuid.UUID, content string, parentID *uuid.UUID) (*comment.Comment, error) {
	if taskID == uuid.Nil {
		return nil, NewValidationError("task", "пустое значение")
	}
	t, err := loadTask(ctx, s.tasks, taskID)
	if err != nil {
		return nil, err
	}
	p, err := loadProject(ctx, s.projects, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if !access.HasProjectAccess(p, actorID) {
		return nil, NewForbidden("комментирование задачи")
	}

	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}

	var parent *uuid.UUID
	if parentID != nil && *parentID != uuid.Nil {
		pc, err := s.comments.GetByID(ctx, *parentID)
		if err != nil && !errors.Is(err, rep.ErrNotFound) {
			return nil, internalError("получение родительского комментария", err)
		}
		if err != nil || pc.TaskID != taskID {
			return nil, NewValidationError("parent_comment", "комментарий не относится к задаче")
		}
		id := *parentID
		parent = &id
	}

	c := &comment.Comment{
		ID:            uuid.New(),
		Content:       content,
		TaskID:        taskID,
		AuthorID:      actorID,
		ParentComment: parent,
		CreatedAt:     s.now(),
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, internalError("создание комментария", err, zap.String("task_id", taskID.String()))
	}
	if err := s.tasks.AttachComment(ctx, taskID, c.ID); err != nil {
		return nil, internalError("привязка комментария к задаче", err,
			zap.String("task_id", taskID.String()),
			zap.String("comment_id", c.ID.String()))
	}

	logger.Info("Service: Комментарий добавлен",
		zap.String("comment_id", c.ID.String()),
		zap.String("task_id", taskID.String()))
	return c, nil
}

func (s *CommentService) ListComments(ctx context.Context, actorID, taskID uuid.UUID) ([]*comment.Comment, error) {
	t, err := loadTask(ctx, s.tasks, taskID)
	if err != nil {
		return nil, err
	}
	p, err := loadProject(ctx, s.projects, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if !access.HasProjectAccess(p, actorID) {
		return nil, NewForbidden("просмотр комментариев")
	}

	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, internalError("получение комментариев", err, zap.String("task_id", taskID.String()))
	}
	return comments, nil
}

// UpdateComment доступно только автору, права админа проекта здесь не действуют
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*comment.Comment, error) {
	c, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !access.CanEditComment(c, actorID) {
		return nil, NewForbidden("редактирование комментария")
	}

	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}

	now := s.now()
	c.Content = content
	c.IsEdited = true
	c.EditedAt = &now

	if err := s.comments.Update(ctx, c); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceComment, commentID.String())
		}
		return nil, internalError("обновление комментария", err, zap.String("comment_id", commentID.String()))
	}
	return c, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	c, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}
	t, err := loadTask(ctx, s.tasks, c.TaskID)
	if err != nil {
		return err
	}
	p, err := loadProject(ctx, s.projects, t.ProjectID)
	if err != nil {
		return err
	}
	if !access.CanDeleteComment(c, t, p, actorID) {
		return NewForbidden("удаление комментария")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceComment, commentID.String())
		}
		return internalError("удаление комментария", err, zap.String("comment_id", commentID.String()))
	}
	if err := s.tasks.DetachComment(ctx, t.ID, commentID); err != nil && !errors.Is(err, rep.ErrNotFound) {
		return internalError("отвязка комментария от задачи", err,
			zap.String("task_id", t.ID.String()),
			zap.String("comment_id", commentID.String()))
	}
	return nil
}
