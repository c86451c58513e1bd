package handlers

import (
	"net/http"

	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

// actor достаёт аутентифицированного пользователя. Без него маршрут не работает.
func actor(w http.ResponseWriter, r *http.Request) (service.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		logger.Warn("HTTP: Запрос без пользователя в контексте",
			zap.String("path", r.URL.Path))
		responseWithError(w, r, http.StatusUnauthorized, service.CodeUnauthenticated, "требуется аутентификация", nil)
		return service.Principal{}, false
	}
	return p, true
}
