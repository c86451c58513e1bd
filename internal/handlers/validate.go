package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeJSON проверяет Content-Type и читает тело в dst. При ошибке ответ уже записан.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный Content-Type",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("content_type", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, r, http.StatusUnsupportedMediaType, service.CodeValidation, "ожидается application/json", nil)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		logger.Warn("HTTP: Ошибка разбора тела запроса",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, r, http.StatusBadRequest, service.CodeValidation, "некорректный JSON", nil)
		return false
	}
	return true
}

// pathID достаёт uuid из параметра маршрута
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("HTTP: Неверный идентификатор",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("param", name),
			zap.String("value", raw))
		responseWithError(w, r, http.StatusBadRequest, service.CodeValidation, "неверный идентификатор "+name,
			map[string]any{"field": name})
		return uuid.Nil, false
	}
	return id, true
}
