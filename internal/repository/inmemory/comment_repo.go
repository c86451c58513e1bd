package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskBoard/internal/models/comment"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type CommentStorage struct {
	storage map[uuid.UUID]*comment.Comment
	order   map[uuid.UUID]uint64
	next    uint64
	mtx     *sync.RWMutex
}

func NewCommentStorage() *CommentStorage {
	return &CommentStorage{
		storage: make(map[uuid.UUID]*comment.Comment),
		order:   make(map[uuid.UUID]uint64),
		mtx:     &sync.RWMutex{},
	}
}

func (s *CommentStorage) Create(ctx context.Context, c *comment.Comment) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[c.ID]; ok {
		return repo.ErrDuplicate
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	s.next++
	s.order[c.ID] = s.next
	s.storage[c.ID] = c.Clone()
	return nil
}

func (s *CommentStorage) Update(ctx context.Context, c *comment.Comment) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[c.ID]; !ok {
		return repo.ErrNotFound
	}

	now := time.Now()
	c.UpdatedAt = &now
	s.storage[c.ID] = c.Clone()
	return nil
}

func (s *CommentStorage) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	c, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *CommentStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	delete(s.order, id)
	return nil
}

func (s *CommentStorage) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*comment.Comment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*comment.Comment{}
	for _, c := range s.storage {
		if c.TaskID == taskID {
			res = append(res, c.Clone())
		}
	}

	// при совпадении времени порядок определяет очередность вставки
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return s.order[res[i].ID] < s.order[res[j].ID]
	})
	return res, nil
}

var _ service.CommentRepository = (*CommentStorage)(nil)
