package toggle_visibility_handler

import (
	"context"
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/manage_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// ToggleVisibilityHandler переключает публичность квиза.
type ToggleVisibilityHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewToggleVisibilityHandler возвращает новый экземпляр обработчика.
func NewToggleVisibilityHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *ToggleVisibilityHandler {
	return &ToggleVisibilityHandler{sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает callback с аргументами (ID квиза, текущая видимость).
func (h *ToggleVisibilityHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return nil
	}
	quizID := args[0]
	isPublic, err := strconv.ParseBool(args[1])
	if err != nil {
		return nil
	}

	ctx := context.Background()
	session, err := h.sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if !session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	if err := h.quizzes.SetVisibility(ctx, session.Token, quizID, !isPublic); err != nil {
		return c.Send(api.UserMessage(err))
	}
	return manage_quiz_handler.Render(c, h.sessions, h.quizzes, quizID)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *ToggleVisibilityHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
