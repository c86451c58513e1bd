package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/user"
	rep "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

// Principal - аутентифицированный пользователь, от имени которого идёт запрос
type Principal struct {
	UserID   uuid.UUID
	Role     user.Role
	IsActive bool
}

type ProfilePatch struct {
	Name  *string
	Email *string
}

type UserService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

func NewUserService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "пустое значение")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("email", "неверный формат")
	}
	return nil
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return nil, "", NewValidationError("name", "пустое значение")
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if len(password) < minPasswordLength {
		return nil, "", NewValidationError("password", "минимум 6 символов")
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", NewEmailTaken(email)
	}
	if !errors.Is(err, rep.ErrNotFound) {
		return nil, "", internalError("поиск пользователя по email", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", internalError("хеширование пароля", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, "", NewEmailTaken(email)
		}
		return nil, "", internalError("создание пользователя", err)
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", internalError("выпуск токена", err)
	}

	logger.Info("Service: Пользователь зарегистрирован", zap.String("user_id", u.ID.String()))
	return u, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	email = normalizeEmail(email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, "", NewUnauthenticated("неверный email или пароль")
		}
		return nil, "", internalError("поиск пользователя по email", err)
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		return nil, "", NewUnauthenticated("неверный email или пароль")
	}
	if !u.IsActive {
		return nil, "", NewAccountDeactivated()
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", internalError("выпуск токена", err)
	}
	return u, token, nil
}

// Authenticate разрешает токен в Principal. Деактивированный аккаунт отклоняется
// до любых проверок доступа.
func (s *UserService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, NewUnauthenticated("токен не передан")
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, NewUnauthenticated("токен недействителен")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewUnauthenticated("пользователь не найден")
		}
		return nil, internalError("загрузка пользователя", err)
	}

	if !u.IsActive {
		return nil, NewAccountDeactivated()
	}

	return &Principal{UserID: u.ID, Role: u.Role, IsActive: u.IsActive}, nil
}

func (s *UserService) loadUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound(ResourceUser, id.String())
		}
		return nil, internalError("загрузка пользователя", err, zap.String("user_id", id.String()))
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.loadUser(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*user.User, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, NewValidationError("name", "пустое значение")
		}
		u.Name = name
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != u.Email {
			existing, err := s.users.GetByEmail(ctx, email)
			if err == nil && existing.ID != u.ID {
				return nil, NewEmailTaken(email)
			}
			if err != nil && !errors.Is(err, rep.ErrNotFound) {
				return nil, internalError("поиск пользователя по email", err)
			}
			u.Email = email
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, NewEmailTaken(u.Email)
		}
		return nil, internalError("обновление профиля", err, zap.String("user_id", userID.String()))
	}
	return u, nil
}

// SetActive - административное включение/отключение аккаунта
func (s *UserService) SetActive(ctx context.Context, actor Principal, userID uuid.UUID, active bool) (*user.User, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != user.RoleAdmin {
		return nil, NewForbidden("изменение статуса аккаунта")
	}
	if actor.UserID == userID && !active {
		return nil, NewInvalidOperation("нельзя деактивировать собственный аккаунт")
	}

	u.IsActive = active
	if err := s.users.Update(ctx, u); err != nil {
		return nil, internalError("обновление статуса аккаунта", err, zap.String("user_id", userID.String()))
	}

	logger.Info("Service: Статус аккаунта изменён",
		zap.String("user_id", userID.String()),
		zap.String("actor_id", actor.UserID.String()),
		zap.Bool("active", active))
	return u, nil
}
