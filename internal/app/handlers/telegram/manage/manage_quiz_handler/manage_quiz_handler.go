package manage_quiz_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// ManageQuizHandler показывает карточку управления квизом. Квиз всегда
// запрашивается заново, поэтому карточка отражает последние изменения.
type ManageQuizHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewManageQuizHandler возвращает новый экземпляр обработчика.
func NewManageQuizHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *ManageQuizHandler {
	return &ManageQuizHandler{sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает callback с аргументом (ID квиза).
func (h *ManageQuizHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return nil
	}
	return Render(c, h.sessions, h.quizzes, args[0])
}

// Render загружает квиз и показывает карточку управления.
// Используется другими обработчиками после мутаций.
func Render(c telebot.Context, sessions *sessionService.SessionService, quizzes *quizService.QuizService, quizID string) error {
	ctx := context.Background()
	session, err := sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if !session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	quiz, err := quizzes.Get(ctx, session.Token, quizID)
	if err != nil {
		return c.Send(api.UserMessage(err))
	}

	text, markup := views.ManageQuiz(&telebot.ReplyMarkup{}, quiz)
	if c.Callback() != nil {
		return c.Edit(text, markup)
	}
	return c.Send(text, markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *ManageQuizHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
