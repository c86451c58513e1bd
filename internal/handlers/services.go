package handlers

import (
	"context"

	"taskBoard/internal/models/comment"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	Profile(ctx context.Context, userID uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch service.ProfilePatch) (*user.User, error)
	SetActive(ctx context.Context, actor service.Principal, userID uuid.UUID, active bool) (*user.User, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, actorID uuid.UUID, input service.NewProject) (*project.Project, error)
	ListProjects(ctx context.Context, actorID uuid.UUID) ([]*project.Project, error)
	GetProject(ctx context.Context, actorID, projectID uuid.UUID) (*project.Project, error)
	UpdateProject(ctx context.Context, actorID, projectID uuid.UUID, patch service.ProjectPatch) (*project.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error
	AddMember(ctx context.Context, actorID, projectID uuid.UUID, email string, role project.MemberRole) (*project.Project, error)
	RemoveMember(ctx context.Context, actorID, projectID, targetID uuid.UUID) (*project.Project, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, actorID uuid.UUID, input service.NewTask) (*task.Task, error)
	GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*task.Task, error)
	ListTasks(ctx context.Context, actorID uuid.UUID, filter service.TaskFilter) ([]*task.Task, error)
	UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, patch service.TaskPatch) (*task.Task, error)
	UpdateStatus(ctx context.Context, actorID, taskID uuid.UUID, status task.Status) (*task.Task, error)
	UpdatePosition(ctx context.Context, actorID, taskID uuid.UUID, position *int, status *task.Status) (*task.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error
}

type CommentService interface {
	CreateComment(ctx context.Context, actorID, taskID uuid.UUID, content string, parentID *uuid.UUID) (*comment.Comment, error)
	ListComments(ctx context.Context, actorID, taskID uuid.UUID) ([]*comment.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*comment.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error
}

var (
	_ UserService    = (*service.UserService)(nil)
	_ ProjectService = (*service.ProjectService)(nil)
	_ TaskService    = (*service.TaskService)(nil)
	_ CommentService = (*service.CommentService)(nil)
)
