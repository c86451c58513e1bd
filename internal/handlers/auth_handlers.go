package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	UserService UserService
}

func NewAuthHandler(userService UserService) AuthHandler {
	return AuthHandler{
		UserService: userService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, token, err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь зарегистрирован",
		zap.String("user_id", u.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("user", dto.FromUser(u)),
		toPayload("token", token),
	)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Вход выполнен",
		zap.String("user_id", u.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("user", dto.FromUser(u)),
		toPayload("token", token),
	)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}

	u, err := h.UserService.Profile(r.Context(), p.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("user", dto.FromUser(u)))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), p.UserID, service.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Профиль обновлён",
		zap.String("user_id", u.ID.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("user", dto.FromUser(u)))
}

// SetActive - включение и выключение учётной записи администратором
func (h *AuthHandler) SetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.HttpRequestInfo(r, "HTTP_IN:")

		p, ok := actor(w, r)
		if !ok {
			return
		}
		userID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		u, err := h.UserService.SetActive(r.Context(), p, userID, active)
		if err != nil {
			handleError(w, r, err)
			return
		}

		logger.Info("HTTP_OUT: Статус учётной записи изменён",
			zap.String("user_id", u.ID.String()),
			zap.Bool("is_active", u.IsActive),
			zap.String("by", p.UserID.String()))

		responseWithJSON(w, http.StatusOK, toPayload("user", dto.FromUser(u)))
	}
}
