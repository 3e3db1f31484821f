package active_attempts_handler

import (
	"encoding/json"
	"net/http"

	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	"github.com/Kritika122297/QuizMaster/internal/domain/dto"
	httpError "github.com/Kritika122297/QuizMaster/pkg/http"
)

// ActiveAttemptsHandler отдает отчет о текущих попытках прохождения квизов.
type ActiveAttemptsHandler struct {
	attempts *attemptService.AttemptService
}

// NewActiveAttemptsHandler создает новый экземпляр обработчика.
func NewActiveAttemptsHandler(attempts *attemptService.AttemptService) *ActiveAttemptsHandler {
	return &ActiveAttemptsHandler{attempts: attempts}
}

// ServeHTTP метод для обработки запроса.
func (h *ActiveAttemptsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snapshots := h.attempts.ActiveAttempts()

	response := dto.ActiveAttemptsResponse{
		TotalActiveUsers: len(snapshots),
		ActiveAttempts:   snapshots,
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
}
