package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/models/project"
	rep "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NewProject struct {
	Name        string
	Description string
	Status      project.Status
	Color       string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProjectPatch - частичное обновление; владелец здесь не меняется
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *project.Status
	Color       *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type ProjectService struct {
	projects ProjectRepository
	users    UserRepository
	now      func() time.Time
}

func NewProjectService(projects ProjectRepository, users UserRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		now:      time.Now,
	}
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return NewValidationError("end_date", "раньше даты начала")
	}
	return nil
}

func (s *ProjectService) CreateProject(ctx context.Context, actorID uuid.UUID, input NewProject) (*project.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("name", "пустое значение")
	}
	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	status := input.Status
	if strings.TrimSpace(string(status)) == "" {
		status = project.StatusPlanning
	}
	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = project.DefaultColor
	}

	p := &project.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		OwnerID:     actorID,
		Members:     []project.Member{},
		Color:       color,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   s.now(),
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, internalError("создание проекта", err)
	}

	logger.Info("Service: Проект создан",
		zap.String("project_id", p.ID.String()),
		zap.String("owner_id", actorID.String()))
	return p, nil
}

// loadProject отличает отсутствие проекта (NOT_FOUND) от сбоя хранилища
func loadProject(ctx context.Context, projects ProjectRepository, id uuid.UUID) (*project.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.String("target_id", id.String()))
			return nil, NewNotFound(ResourceProject, id.String())
		}
		return nil, internalError("получение проекта", err, zap.String("project_id", id.String()))
	}
	return p, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, actorID uuid.UUID) ([]*project.Project, error) {
	projects, err := s.projects.ListByUser(ctx, actorID)
	if err != nil {
		return nil, internalError("получение проектов", err, zap.String("user_id", actorID.String()))
	}
	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, actorID, projectID uuid.UUID) (*project.Project, error) {
	p, err := loadProject(ctx, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if !access.HasProjectAccess(p, actorID) {
		return nil, NewForbidden("просмотр проекта")
	}
	return p, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, actorID, projectID uuid.UUID, patch ProjectPatch) (*project.Project, error) {
	p, err := loadProject(ctx, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if !access.IsProjectAdmin(p, actorID) {
		return nil, NewForbidden("изменение проекта")
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, NewValidationError("name", "пустое значение")
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil && strings.TrimSpace(string(*patch.Status)) != "" {
		p.Status = *patch.Status
	}
	if patch.Color != nil && strings.TrimSpace(*patch.Color) != "" {
		p.Color = strings.TrimSpace(*patch.Color)
	}
	if patch.StartDate != nil {
		p.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = patch.EndDate
	}
	if err := validateDates(p.StartDate, p.EndDate); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, internalError("обновление проекта", err, zap.String("project_id", projectID.String()))
	}
	return p, nil
}

// DeleteProject доступно только владельцу. Задачи и комментарии проекта не удаляются.
func (s *ProjectService) DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error {
	p, err := loadProject(ctx, s.projects, projectID)
	if err != nil {
		return err
	}
	if !access.IsOwner(p, actorID) {
		return NewForbidden("удаление проекта")
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(ResourceProject, projectID.String())
		}
		return internalError("удаление проекта", err, zap.String("project_id", projectID.String()))
	}

	logger.Info("Service: Проект удалён", zap.String("project_id", projectID.String()))
	return nil
}

func (s *ProjectService) AddMember(ctx context.Context, actorID, projectID uuid.UUID, email string, role project.MemberRole) (*project.Project, error) {
	p, err := loadProject(ctx, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if !access.IsProjectAdmin(p, actorID) {
		return nil, NewForbidden("добавление участника")
	}

	if role == "" {
		role = project.RoleMember
	}
	if !role.Valid() {
		return nil, NewValidationError("role", "допустимо admin или member")
	}

	email = normalizeEmail(email)
	if email == "" {
		return nil, NewValidationError("email", "пустое значение")
	}

	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceUser, email)
		}
		return nil, internalError("поиск пользователя по email", err)
	}

	if access.HasProjectAccess(p, target.ID) {
		return nil, NewAlreadyMember(email)
	}

	p.Members = append(p.Members, project.Member{
		UserID:   target.ID,
		Role:     role,
		JoinedAt: s.now(),
	})

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, internalError("добавление участника", err, zap.String("project_id", projectID.String()))
	}

	logger.Info("Service: Участник добавлен",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", target.ID.String()),
		zap.String("role", string(role)))
	return p, nil
}

// RemoveMember убирает пользователя из списка участников. Задачи, назначенные
// на него, остаются назначенными.
func (s *ProjectService) RemoveMember(ctx context.Context, actorID, projectID, targetID uuid.UUID) (*project.Project, error) {
	p, err := loadProject(ctx, s.projects, projectID)
	if err != nil {
		return nil, err
	}
	if !access.IsProjectAdmin(p, actorID) {
		return nil, NewForbidden("удаление участника")
	}
	if access.IsOwner(p, targetID) {
		return nil, NewInvalidOperation("владельца нельзя удалить из проекта")
	}

	members := make([]project.Member, 0, len(p.Members))
	for _, m := range p.Members {
		if m.UserID != targetID {
			members = append(members, m)
		}
	}
	p.Members = members

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, internalError("удаление участника", err, zap.String("project_id", projectID.String()))
	}
	return p, nil
}
