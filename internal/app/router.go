package app

import (
	"net/http"

	"taskBoard/internal/config"
	"taskBoard/internal/handlers"
	"taskBoard/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(cfg config.ServerConfig, s Services, health handlers.HealthHandler) *chi.Mux {
	authHandler := handlers.NewAuthHandler(s.Users)
	projectHandler := handlers.NewProjectHandler(s.Projects)
	taskHandler := handlers.NewTaskHandler(s.Tasks)
	commentHandler := handlers.NewCommentHandler(s.Comments)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.RateLimit(cfg.RateLimit))

	r.Get("/health", health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register) // POST /api/auth/register
		r.Post("/auth/login", authHandler.Login)       // POST /api/auth/login

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.Users))

			r.Get("/auth/profile", authHandler.Profile)
			r.Put("/auth/profile", authHandler.UpdateProfile)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.CreateProject)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", projectHandler.GetProject)
					r.Put("/", projectHandler.UpdateProject)
					r.Delete("/", projectHandler.DeleteProject)

					r.Post("/members", projectHandler.AddMember)               // POST /api/projects/{id}/members
					r.Delete("/members/{userId}", projectHandler.RemoveMember) // DELETE /api/projects/{id}/members/{userId}
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/project/{projectId}", taskHandler.ListTasks) // GET /api/tasks/project/{projectId}
				r.Post("/", taskHandler.CreateTask)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Put("/", taskHandler.UpdateTask)
					r.Delete("/", taskHandler.DeleteTask)

					r.Patch("/status", taskHandler.UpdateStatus)     // PATCH /api/tasks/{id}/status
					r.Patch("/position", taskHandler.UpdatePosition) // PATCH /api/tasks/{id}/position
				})
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/task/{taskId}", commentHandler.ListComments) // GET /api/comments/task/{taskId}
				r.Post("/", commentHandler.CreateComment)
				r.Put("/{id}", commentHandler.UpdateComment)
				r.Delete("/{id}", commentHandler.DeleteComment)
			})

			// роль администратора проверяет сервис, после поиска пользователя
			r.Route("/admin", func(r chi.Router) {
				r.Post("/users/{id}/activate", authHandler.SetActive(true))    // POST /api/admin/users/{id}/activate
				r.Post("/users/{id}/deactivate", authHandler.SetActive(false)) // POST /api/admin/users/{id}/deactivate
			})
		})
	})

	return r
}
