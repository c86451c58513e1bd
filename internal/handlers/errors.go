package handlers

import (
	"errors"
	"net/http"

	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

const internalMessage = "internal server error"

// handleError переводит ошибку сервиса в HTTP ответ.
// Текст внутренних ошибок клиенту не отдаётся.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) || businessErr.Code == service.CodeInternal {
		logger.Error("HTTP: Внутренняя ошибка", err,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path))
		responseWithError(w, r, http.StatusInternalServerError, service.CodeInternal, internalMessage, nil)
		return
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)
	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode),
		zap.String("path", r.URL.Path))

	responseWithError(w, r, statusCode, businessErr.Code, businessErr.Message, businessErr.Details)
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeUnauthenticated, service.CodeAccountDeactivated:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation,
		service.CodeInvalidStatus,
		service.CodeInvalidAssignee,
		service.CodeAlreadyMember,
		service.CodeEmailTaken,
		service.CodeInvalidOperation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
