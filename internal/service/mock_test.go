package service_test

import (
	"context"
	"errors"
	"testing"

	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	"taskBoard/internal/repository"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, filter service.TaskFilter) ([]*task.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) AttachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	args := m.Called(ctx, taskID, commentID)
	return args.Error(0)
}

func (m *MockTaskRepository) DetachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	args := m.Called(ctx, taskID, commentID)
	return args.Error(0)
}

// MockProjectRepository - мок репозитория проектов
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*project.Project), args.Error(1)
}

func (m *MockProjectRepository) BumpTaskSeq(ctx context.Context, id uuid.UUID, next int) error {
	args := m.Called(ctx, id, next)
	return args.Error(0)
}

func TestTaskService_CreateTask_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	p := &project.Project{ID: uuid.New(), OwnerID: owner, TaskSeq: 4}
	dbErr := errors.New("connection refused")

	tests := []struct {
		name      string
		setupMock func(tasks *MockTaskRepository, projects *MockProjectRepository)
		wantCode  string
	}{
		{
			name: "project lookup fails",
			setupMock: func(tasks *MockTaskRepository, projects *MockProjectRepository) {
				projects.On("GetByID", ctx, p.ID).Return(nil, dbErr)
			},
			wantCode: service.CodeInternal,
		},
		{
			name: "position lookup fails",
			setupMock: func(tasks *MockTaskRepository, projects *MockProjectRepository) {
				projects.On("GetByID", ctx, p.ID).Return(p.Clone(), nil)
				tasks.On("MaxPosition", ctx, p.ID).Return(0, dbErr)
			},
			wantCode: service.CodeInternal,
		},
		{
			name: "sequence bump fails before insert",
			setupMock: func(tasks *MockTaskRepository, projects *MockProjectRepository) {
				projects.On("GetByID", ctx, p.ID).Return(p.Clone(), nil)
				tasks.On("MaxPosition", ctx, p.ID).Return(1, nil)
				projects.On("BumpTaskSeq", ctx, p.ID, 5).Return(dbErr)
			},
			wantCode: service.CodeInternal,
		},
		{
			name: "success uses sequence over max position",
			setupMock: func(tasks *MockTaskRepository, projects *MockProjectRepository) {
				projects.On("GetByID", ctx, p.ID).Return(p.Clone(), nil)
				tasks.On("MaxPosition", ctx, p.ID).Return(1, nil)
				projects.On("BumpTaskSeq", ctx, p.ID, 5).Return(nil)
				tasks.On("Create", ctx, mock.MatchedBy(func(t *task.Task) bool {
					return t.Position == 4 && t.CreatedBy == owner
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := new(MockTaskRepository)
			projects := new(MockProjectRepository)
			tt.setupMock(tasks, projects)

			svc := service.NewTaskService(tasks, projects)
			created, err := svc.CreateTask(ctx, owner, service.NewTask{ProjectID: p.ID, Title: "task"})

			if tt.wantCode != "" {
				var busErr *service.BusinessError
				assert.ErrorAs(t, err, &busErr)
				assert.Equal(t, tt.wantCode, busErr.Code)
				assert.ErrorIs(t, err, dbErr)
				assert.Nil(t, created)
				tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 4, created.Position)
			}

			tasks.AssertExpectations(t)
			projects.AssertExpectations(t)
		})
	}
}

func TestTaskService_UpdateStatus_DeletedConcurrently(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	p := &project.Project{ID: uuid.New(), OwnerID: owner}
	existing := task.New(p.ID, owner, "task")

	tasks := new(MockTaskRepository)
	projects := new(MockProjectRepository)
	tasks.On("GetByID", ctx, existing.ID).Return(existing, nil)
	projects.On("GetByID", ctx, p.ID).Return(p, nil)
	tasks.On("Update", ctx, mock.Anything).Return(repository.ErrNotFound)

	svc := service.NewTaskService(tasks, projects)
	_, err := svc.UpdateStatus(ctx, owner, existing.ID, task.StatusDone)

	assert.ErrorIs(t, err, service.ErrNotFound)
	tasks.AssertExpectations(t)
}
