package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskBoard/internal/models/task"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
	}
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToCreate.ID]; ok {
		return repo.ErrDuplicate
	}
	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = time.Now()
	}

	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	current, ok := s.storage[taskToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	now := time.Now()
	taskToUpdate.UpdatedAt = &now
	// список комментариев меняют только AttachComment/DetachComment
	taskToUpdate.Comments = append([]uuid.UUID{}, current.Comments...)
	s.storage[taskToUpdate.ID] = taskToUpdate.Clone()
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func matches(t *task.Task, filter service.TaskFilter) bool {
	if t.ProjectID != filter.ProjectID {
		return false
	}
	if filter.Status != nil && t.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && t.Priority != *filter.Priority {
		return false
	}
	if filter.AssignedTo != nil && !t.IsAssignedTo(*filter.AssignedTo) {
		return false
	}
	return true
}

// задачи проекта по позиции, при равной позиции новые первыми
func (s *TaskStorage) List(ctx context.Context, filter service.TaskFilter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.storage {
		if matches(t, filter) {
			res = append(res, t.Clone())
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Position != res[j].Position {
			return res[i].Position < res[j].Position
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *TaskStorage) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	maxPos := -1
	for _, t := range s.storage {
		if t.ProjectID == projectID && t.Position > maxPos {
			maxPos = t.Position
		}
	}
	return maxPos, nil
}

func (s *TaskStorage) AttachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[taskID]
	if !ok {
		return repo.ErrNotFound
	}
	for _, id := range t.Comments {
		if id == commentID {
			return nil
		}
	}
	t.Comments = append(t.Comments, commentID)
	return nil
}

func (s *TaskStorage) DetachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[taskID]
	if !ok {
		return repo.ErrNotFound
	}
	kept := t.Comments[:0]
	for _, id := range t.Comments {
		if id != commentID {
			kept = append(kept, id)
		}
	}
	t.Comments = kept
	return nil
}

var _ service.TaskRepository = (*TaskStorage)(nil)
