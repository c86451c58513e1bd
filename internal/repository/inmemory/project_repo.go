package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/models/project"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type ProjectStorage struct {
	storage map[uuid.UUID]*project.Project
	mtx     *sync.RWMutex
}

func NewProjectStorage() *ProjectStorage {
	return &ProjectStorage{
		storage: make(map[uuid.UUID]*project.Project),
		mtx:     &sync.RWMutex{},
	}
}

func (s *ProjectStorage) Create(ctx context.Context, p *project.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[p.ID]; ok {
		return repo.ErrDuplicate
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	s.storage[p.ID] = p.Clone()
	return nil
}

// Update не трогает TaskSeq: им управляет только BumpTaskSeq
func (s *ProjectStorage) Update(ctx context.Context, p *project.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[p.ID]
	if !ok {
		return repo.ErrNotFound
	}

	now := time.Now()
	p.UpdatedAt = &now
	p.TaskSeq = existing.TaskSeq
	s.storage[p.ID] = p.Clone()
	return nil
}

func (s *ProjectStorage) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	p, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *ProjectStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *ProjectStorage) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*project.Project{}
	for _, p := range s.storage {
		if access.HasProjectAccess(p, userID) {
			res = append(res, p.Clone())
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *ProjectStorage) BumpTaskSeq(ctx context.Context, id uuid.UUID, next int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	p, ok := s.storage[id]
	if !ok {
		return repo.ErrNotFound
	}
	if p.TaskSeq < next {
		p.TaskSeq = next
	}
	return nil
}

var _ service.ProjectRepository = (*ProjectStorage)(nil)
