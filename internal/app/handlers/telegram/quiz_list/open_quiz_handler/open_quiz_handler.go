package open_quiz_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// OpenQuizHandler открывает карточку квиза из списка: для своих квизов —
// карточку управления, для остальных — карточку с кнопкой прохождения.
type OpenQuizHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewOpenQuizHandler возвращает новый экземпляр обработчика.
func NewOpenQuizHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *OpenQuizHandler {
	return &OpenQuizHandler{sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает callback с аргументами (ID квиза, вкладка).
func (h *OpenQuizHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return nil
	}
	quizID, tab := args[0], args[1]

	ctx := context.Background()
	session, err := h.sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}

	quiz, err := h.quizzes.Get(ctx, session.Token, quizID)
	if err != nil {
		return c.Send(api.UserMessage(err))
	}

	if tab == quizService.TabMine {
		text, markup := views.ManageQuiz(&telebot.ReplyMarkup{}, quiz)
		return c.Edit(text, markup)
	}

	limit := "без ограничения по времени"
	if quiz.TimeLimit > 0 {
		limit = fmt.Sprintf("%d мин.", quiz.TimeLimit)
	}
	text := fmt.Sprintf("📖 «%s»\n%s\n\nВопросов: %d, %s", quiz.Title, quiz.Description, len(quiz.Questions), limit)

	m := &telebot.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data(messages.BtnStartQuiz, views.UniqueAttempt, quiz.ID)),
		m.Row(m.Data(messages.BtnBackToMenu, views.UniqueMenu)),
	)
	return c.Edit(text, m)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *OpenQuizHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
