package start_handler

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/authgate"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// StartHandler обрабатывает команду /start: приветствие с главным меню
// и вход по диплинку вида t.me/<bot>?start=quiz_<id>.
type StartHandler struct {
	sessions     *sessionService.SessionService
	gate         *authgate.Gate
	beginAttempt func(c telebot.Context, quizID string) error
}

// NewStartHandler возвращает новый экземпляр обработчика.
func NewStartHandler(
	sessions *sessionService.SessionService,
	gate *authgate.Gate,
	beginAttempt func(c telebot.Context, quizID string) error,
) *StartHandler {
	return &StartHandler{
		sessions:     sessions,
		gate:         gate,
		beginAttempt: beginAttempt,
	}
}

// Handle обрабатывает /start.
func (h *StartHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	// Подтверждаем сохраненную сессию запросом «кто я»: протухший токен
	// будет сброшен здесь, а не на первом действии пользователя.
	// Временный сбой сети сессию не трогает, поэтому ошибку не показываем.
	_, _ = h.sessions.FetchCurrentUser(ctx, userID)

	session, err := h.sessions.Session(ctx, userID)
	if err != nil {
		return err
	}

	if payload := strings.TrimSpace(c.Message().Payload); strings.HasPrefix(payload, "quiz_") {
		quizID := strings.TrimPrefix(payload, "quiz_")
		decision := h.gate.Decide(session.Authenticated(), model.RouteAttempt)
		if !decision.Allowed {
			m := &telebot.ReplyMarkup{}
			m.Inline(m.Row(m.Data(messages.BtnLogin, views.UniqueLogin), m.Data(messages.BtnSignup, views.UniqueSignup)))
			return c.Send(messages.AuthRequired, m)
		}
		return h.beginAttempt(c, quizID)
	}

	text := fmt.Sprintf(messages.WelcomeGuestFmt, c.Sender().FirstName)
	if session.Authenticated() {
		text = fmt.Sprintf(messages.WelcomeUserFmt, session.User.Username)
	}
	return c.Send(text, views.MainMenu(&telebot.ReplyMarkup{}, session.Authenticated()))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
