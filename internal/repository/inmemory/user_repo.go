package inmemory

import (
	"context"
	"sync"
	"time"

	"taskBoard/internal/models/user"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type UserStorage struct {
	storage map[uuid.UUID]*user.User
	byEmail map[string]uuid.UUID
	mtx     *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]uuid.UUID),
		mtx:     &sync.RWMutex{},
	}
}

func cloneUser(u *user.User) *user.User {
	out := *u
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func (s *UserStorage) Create(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	if _, ok := s.storage[u.ID]; ok {
		return repo.ErrDuplicate
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	s.storage[u.ID] = cloneUser(u)
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *UserStorage) Update(ctx context.Context, u *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if owner, taken := s.byEmail[u.Email]; taken && owner != u.ID {
		return repo.ErrDuplicate
	}

	now := time.Now()
	u.UpdatedAt = &now
	delete(s.byEmail, existing.Email)
	s.byEmail[u.Email] = u.ID
	s.storage[u.ID] = cloneUser(u)
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneUser(s.storage[id]), nil
}

var _ service.UserRepository = (*UserStorage)(nil)
