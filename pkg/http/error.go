package http

import (
	"encoding/json"
	"net/http"
)

// ErrorBody — тело ответа с ошибкой сервисного HTTP API.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorResponse пишет ошибку в формате JSON с указанным статусом.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: message})
}
