package inmemory

import (
	"context"

	"taskBoard/internal/logger"
	"taskBoard/internal/service"
)

// Store - хранилище в памяти с тем же контрактом, что и у постоянных бэкендов
type Store struct {
	users    *UserStorage
	projects *ProjectStorage
	tasks    *TaskStorage
	comments *CommentStorage
}

func NewStore() *Store {
	return &Store{
		users:    NewUserStorage(),
		projects: NewProjectStorage(),
		tasks:    NewTaskStorage(),
		comments: NewCommentStorage(),
	}
}

func (s *Store) Users() service.UserRepository       { return s.users }
func (s *Store) Projects() service.ProjectRepository { return s.projects }
func (s *Store) Tasks() service.TaskRepository       { return s.tasks }
func (s *Store) Comments() service.CommentRepository { return s.comments }

func (s *Store) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Хранилище в памяти доступно")
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}
