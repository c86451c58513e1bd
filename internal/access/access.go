// Package access отвечает на вопрос, может ли пользователь действовать над проектом,
// задачей или комментарием. Функции читают только переданные снимки сущностей.
package access

import (
	"taskBoard/internal/models/comment"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"

	"github.com/google/uuid"
)

func IsOwner(p *project.Project, userID uuid.UUID) bool {
	return p != nil && p.OwnerID == userID
}

func IsMember(p *project.Project, userID uuid.UUID) bool {
	if p == nil {
		return false
	}
	_, ok := p.Member(userID)
	return ok
}

// доступ к проекту, его задачам и комментариям: владелец или участник
func HasProjectAccess(p *project.Project, userID uuid.UUID) bool {
	return IsOwner(p, userID) || IsMember(p, userID)
}

// владелец или участник с ролью admin
func IsProjectAdmin(p *project.Project, userID uuid.UUID) bool {
	if IsOwner(p, userID) {
		return true
	}
	if p == nil {
		return false
	}
	m, ok := p.Member(userID)
	return ok && m.Role == project.RoleAdmin
}

func CanDeleteTask(t *task.Task, p *project.Project, userID uuid.UUID) bool {
	if t == nil {
		return false
	}
	return t.CreatedBy == userID || t.IsAssignedTo(userID) || IsProjectAdmin(p, userID)
}

func CanDeleteComment(c *comment.Comment, t *task.Task, p *project.Project, userID uuid.UUID) bool {
	if c == nil {
		return false
	}
	if c.AuthorID == userID {
		return true
	}
	return (t != nil && t.CreatedBy == userID) || IsProjectAdmin(p, userID)
}

// редактировать может только автор, админ проекта может лишь удалить
func CanEditComment(c *comment.Comment, userID uuid.UUID) bool {
	return c != nil && c.AuthorID == userID
}

// исполнителем может быть только владелец или участник проекта
func IsAssignable(p *project.Project, userID uuid.UUID) bool {
	return HasProjectAccess(p, userID)
}
