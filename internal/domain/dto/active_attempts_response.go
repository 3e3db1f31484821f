package dto

import (
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
)

// ActiveAttemptsResponse — отчет о текущих попытках прохождения квизов.
type ActiveAttemptsResponse struct {
	TotalActiveUsers int                       `json:"total_active_users"`
	ActiveAttempts   []attemptService.Snapshot `json:"active_attempts"`
}
