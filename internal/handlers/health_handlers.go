package handlers

import (
	"context"
	"net/http"
	"time"

	"taskBoard/internal/logger"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	Store   HealthChecker
	Backend string
}

func NewHealthHandler(store HealthChecker, backend string) HealthHandler {
	return HealthHandler{Store: store, Backend: backend}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.HealthCheck(ctx); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("storage", h.Backend),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("storage", h.Backend),
		toPayload("time", time.Now().UTC()),
	)
}
