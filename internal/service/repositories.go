package service

import (
	"context"

	"taskBoard/internal/models/comment"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"

	"github.com/google/uuid"
)

// Репозитории возвращают repository.ErrNotFound, если запись не найдена,
// и repository.ErrDuplicate при нарушении уникальности. Реализации не хранят
// ссылки на переданные объекты и отдают копии.

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, p *project.Project) error
	Update(ctx context.Context, p *project.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// проекты, где пользователь владелец или участник, новые первыми
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error)
	// поднимает TaskSeq проекта до next, если он меньше
	BumpTaskSeq(ctx context.Context, id uuid.UUID, next int) error
}

type TaskFilter struct {
	ProjectID  uuid.UUID
	Status     *task.Status
	Priority   *task.Priority
	AssignedTo *uuid.UUID
}

type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Update(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// сортировка: position по возрастанию, затем created_at по убыванию
	List(ctx context.Context, filter TaskFilter) ([]*task.Task, error)
	// максимальная позиция среди задач проекта, -1 если задач нет
	MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error)
	AttachComment(ctx context.Context, taskID, commentID uuid.UUID) error
	DetachComment(ctx context.Context, taskID, commentID uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
	Update(ctx context.Context, c *comment.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// комментарии задачи, старые первыми
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*comment.Comment, error)
}
