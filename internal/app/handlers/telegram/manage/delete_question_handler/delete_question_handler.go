package delete_question_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/manage_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// DeleteQuestionHandler удаляет отдельный вопрос: показывает список вопросов
// квиза, удаляет выбранный и возвращает обновленную карточку управления.
type DeleteQuestionHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewDeleteQuestionHandler возвращает новый экземпляр обработчика.
func NewDeleteQuestionHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *DeleteQuestionHandler {
	return &DeleteQuestionHandler{sessions: sessions, quizzes: quizzes}
}

// HandlePick показывает вопросы квиза кнопками (аргумент — ID квиза).
func (h *DeleteQuestionHandler) HandlePick(c telebot.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return nil
	}
	quizID := args[0]

	ctx := context.Background()
	session, err := h.sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	quiz, err := h.quizzes.Get(ctx, session.Token, quizID)
	if err != nil {
		return c.Send(api.UserMessage(err))
	}

	m := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(quiz.Questions)+1)
	for i, question := range quiz.Questions {
		label := fmt.Sprintf("%d. %s", i+1, question.Text)
		if runes := []rune(label); len(runes) > 40 {
			label = string(runes[:40]) + "…"
		}
		rows = append(rows, m.Row(m.Data(label, views.UniqueDeleteQ, question.ID, quizID)))
	}
	rows = append(rows, m.Row(m.Data(messages.BtnCancelDel, views.UniqueManage, quizID)))
	m.Inline(rows...)
	return c.Edit(messages.PickQuestionToDelete, m)
}

// HandleDelete удаляет вопрос (аргументы — ID вопроса, ID квиза).
func (h *DeleteQuestionHandler) HandleDelete(c telebot.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return nil
	}
	questionID, quizID := args[0], args[1]

	ctx := context.Background()
	session, err := h.sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if !session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	if err := h.quizzes.DeleteQuestion(ctx, session.Token, questionID); err != nil {
		return c.Send(api.UserMessage(err))
	}
	if err := c.Send(messages.DeleteQuestionOk); err != nil {
		return err
	}
	return manage_quiz_handler.Render(c, h.sessions, h.quizzes, quizID)
}
