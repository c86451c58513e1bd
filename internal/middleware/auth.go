package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"taskBoard/internal/logger"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

const principalKey contextKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Principal, error)
}

func WithPrincipal(ctx context.Context, p service.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom возвращает пользователя, положенного в контекст Authenticate
func PrincipalFrom(ctx context.Context) (service.Principal, bool) {
	p, ok := ctx.Value(principalKey).(service.Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error":      code,
		"message":    message,
		"request_id": GetRequestID(r.Context()),
	})
}

// Authenticate разрешает bearer-токен в Principal до любых проверок доступа
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			principal, err := auth.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				var busErr *service.BusinessError
				if !errors.As(err, &busErr) || busErr.Code == service.CodeInternal {
					logger.Error("HTTP: Ошибка аутентификации", err, zap.String("request_id", requestID))
					writeAuthError(w, r, http.StatusInternalServerError, service.CodeInternal, "internal server error")
					return
				}

				logger.Warn("HTTP: Запрос без аутентификации",
					zap.String("request_id", requestID),
					zap.String("error_code", busErr.Code),
					zap.String("client_ip", r.RemoteAddr))
				writeAuthError(w, r, http.StatusUnauthorized, busErr.Code, busErr.Message)
				return
			}

			logger.Debug("HTTP: Пользователь аутентифицирован",
				zap.String("request_id", requestID),
				zap.String("user_id", principal.UserID.String()))

			noteUser(r.Context(), principal.UserID)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), *principal)))
		})
	}
}
