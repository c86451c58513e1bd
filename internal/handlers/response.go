package handlers

import (
	"encoding/json"
	"net/http"

	"taskBoard/internal/logger"
	"taskBoard/internal/middleware"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any)
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	if err := json.NewEncoder(w).Encode(storage); err != nil {
		logger.Error("HTTP: Ошибка записи ответа", err)
	}
}

// responseWithError - единый формат ошибки: код, сообщение и id запроса
func responseWithError(w http.ResponseWriter, r *http.Request, code int, errCode, message string, details map[string]any) {
	payload := []Payload{
		toPayload("error", errCode),
		toPayload("message", message),
		toPayload("request_id", middleware.GetRequestID(r.Context())),
	}
	if len(details) > 0 {
		payload = append(payload, toPayload("details", details))
	}
	responseWithJSON(w, code, payload...)
}
