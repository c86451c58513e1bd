package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/config"
	"taskBoard/internal/logger"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	usersCollection    = "users"
	projectsCollection = "projects"
	tasksCollection    = "tasks"
	commentsCollection = "comments"

	slowQuery = 100 * time.Millisecond
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("Repository: Ошибка подключения к MongoDB", err)
		return nil, fmt.Errorf("подключение к mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	store := &Store{client: client, db: client.Database(cfg.Database)}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("Repository: Успешное создание подключения к MongoDB", zap.String("database", cfg.Database))
	return store, nil
}

// EnsureIndexes создаёт индексы, повторный вызов безопасен
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		projectsCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
			{Keys: bson.D{{Key: "members.user_id", Value: 1}}},
		},
		tasksCollection: {
			{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "position", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("Repository: Ошибка создания индексов", err, zap.String("collection", name))
			return fmt.Errorf("индексы %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Users() service.UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Projects() service.ProjectRepository {
	return &ProjectRepository{coll: s.db.Collection(projectsCollection)}
}

func (s *Store) Tasks() service.TaskRepository {
	return &TaskRepository{coll: s.db.Collection(tasksCollection)}
}

func (s *Store) Comments() service.CommentRepository {
	return &CommentRepository{coll: s.db.Collection(commentsCollection)}
}

func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	logger.Info("Repository: Закрытие соединения MongoDB")
	return s.client.Disconnect(ctx)
}

// Drop удаляет базу целиком, нужен тестам
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func warnIfSlow(operation string, start time.Time) {
	if elapsed := time.Since(start); elapsed > slowQuery {
		logger.Warn("Repository: Медленный запрос",
			zap.String("operation", operation),
			zap.Duration("ms", elapsed))
	}
}

// translate приводит ошибки драйвера к ошибкам репозитория
func translate(operation string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repo.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repo.ErrDuplicate
	}
	logger.Error("Repository: "+operation, err)
	return fmt.Errorf("%s: %w", operation, err)
}

func expectMatch(res *mongo.UpdateResult) error {
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
