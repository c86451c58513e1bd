package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskBoard/internal/auth"
	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/logger"
	"taskBoard/internal/repository/inmemory"
	"taskBoard/internal/repository/mongodb"
	"taskBoard/internal/repository/postgres"
	"taskBoard/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Store - то, что приложение требует от любого бэкенда хранения
type Store interface {
	Users() service.UserRepository
	Projects() service.ProjectRepository
	Tasks() service.TaskRepository
	Comments() service.CommentRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Store = (*inmemory.Store)(nil)
	_ Store = (*mongodb.Store)(nil)
	_ Store = (*postgres.Storage)(nil)
)

type Services struct {
	Users    *service.UserService
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Comments *service.CommentService
}

type App struct {
	config    *config.Config
	server    *http.Server
	store     Store
	services  Services
	shutdowns []func(context.Context) error // выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context) error, 0),
	}
}

func NewServices(store Store, authCfg config.AuthConfig) Services {
	hasher := auth.NewBcryptHasher(authCfg.BcryptCost)
	tokens := auth.NewTokenManager(authCfg.JWTSecret, authCfg.TokenTTL)

	return Services{
		Users:    service.NewUserService(store.Users(), hasher, tokens),
		Projects: service.NewProjectService(store.Projects(), store.Users()),
		Tasks:    service.NewTaskService(store.Tasks(), store.Projects()),
		Comments: service.NewCommentService(store.Comments(), store.Tasks(), store.Projects()),
	}
}

// Init поднимает хранилище, сервисы и HTTP сервер. Логгер должен быть уже инициализирован.
func (a *App) Init(ctx context.Context) error {
	store, err := OpenStore(ctx, a.config)
	if err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}
	a.store = store
	a.shutdowns = append(a.shutdowns, func(ctx context.Context) error {
		logger.Info("Закрытие хранилища...")
		return store.Close(ctx)
	})

	a.services = NewServices(store, a.config.Auth)

	router := NewRouter(a.config.Server, a.services, handlers.NewHealthHandler(store, a.config.Repository.Type))
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
	a.shutdowns = append(a.shutdowns, func(ctx context.Context) error {
		logger.Info("Остановка HTTP сервера...")
		return a.server.Shutdown(ctx)
	})

	return nil
}

// OpenStore выбирает бэкенд по repository.type
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Repository.Type {
	case config.RepositoryMemory:
		store := inmemory.NewStore()
		if cfg.Repository.SeedFile != "" {
			hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
			if err := inmemory.LoadSeedFile(ctx, store, cfg.Repository.SeedFile, hasher); err != nil {
				return nil, err
			}
			logger.Info("Демо-данные загружены", zap.String("file", cfg.Repository.SeedFile))
		}
		logger.Info("Используется хранилище в памяти")
		return store, nil

	case config.RepositoryMongo:
		store, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		logger.Info("Используется MongoDB", zap.String("database", cfg.Mongo.Database))
		return store, nil

	case config.RepositoryPostgres:
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			return nil, err
		}
		store, err := postgres.New(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("Используется PostgreSQL")
		return store, nil
	}
	return nil, fmt.Errorf("неизвестный тип репозитория %q", cfg.Repository.Type)
}

// Run обслуживает запросы, пока не отменён ctx, затем корректно останавливается
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP сервер: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			logger.Error("Ошибка при остановке", err)
			errs = append(errs, err)
		}
	}
	a.shutdowns = nil
	logger.Info("Приложение остановлено")
	return errors.Join(errs...)
}
