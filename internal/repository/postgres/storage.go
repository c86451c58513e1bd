package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/config"
	"taskBoard/internal/logger"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	slowQuery = 100 * time.Millisecond
	// код unique_violation
	uniqueViolation = "23505"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL",
		zap.Int32("max_conns", poolConfig.MaxConns))
	return &Storage{pool: pool}, nil
}

func (s *Storage) Users() service.UserRepository       { return &UserRepository{pool: s.pool} }
func (s *Storage) Projects() service.ProjectRepository { return &ProjectRepository{pool: s.pool} }
func (s *Storage) Tasks() service.TaskRepository       { return &TaskRepository{pool: s.pool} }
func (s *Storage) Comments() service.CommentRepository { return &CommentRepository{pool: s.pool} }

func (s *Storage) Close(ctx context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Debug("Repository: Соединение стабильно")
	return nil
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
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repo.ErrDuplicate
	}
	logger.Error("Repository: "+operation, err)
	return fmt.Errorf("%s: %w", operation, err)
}

// collectRows читает все строки выборки. Ошибка на любой строке прерывает чтение,
// неполный список наверх не отдаётся.
func collectRows[T any](rows pgx.Rows, operation string, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, translate(operation, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(operation, err)
	}
	return result, nil
}

// для UPDATE/DELETE без RETURNING отсутствие строки видно только по RowsAffected
func expectRow(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
