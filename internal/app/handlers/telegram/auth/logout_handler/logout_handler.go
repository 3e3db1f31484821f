package logout_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// LogoutHandler завершает сессию пользователя.
type LogoutHandler struct {
	sessions *sessionService.SessionService
	attempts *attemptService.AttemptService
}

// NewLogoutHandler возвращает новый экземпляр обработчика.
func NewLogoutHandler(sessions *sessionService.SessionService, attempts *attemptService.AttemptService) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, attempts: attempts}
}

// Handle обрабатывает нажатие кнопки выхода: локальная сессия очищается
// сразу, активная попытка снимается вместе со своим таймером.
func (h *LogoutHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID
	h.attempts.Abort(userID)
	if err := h.sessions.Logout(context.Background(), userID); err != nil {
		return err
	}
	return c.Edit(messages.LogoutOk, views.MainMenu(&telebot.ReplyMarkup{}, false))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *LogoutHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
