package delete_quiz_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/quiz_list/quiz_list_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// DeleteQuizHandler удаляет квиз в два шага: явное подтверждение, затем
// удаление и возврат к обновленному списку «Мои квизы».
type DeleteQuizHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewDeleteQuizHandler возвращает новый экземпляр обработчика.
func NewDeleteQuizHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *DeleteQuizHandler {
	return &DeleteQuizHandler{sessions: sessions, quizzes: quizzes}
}

// HandleRequest показывает вопрос подтверждения (аргумент — ID квиза).
func (h *DeleteQuizHandler) HandleRequest(c telebot.Context) error {
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
	m.Inline(m.Row(
		m.Data(messages.BtnConfirmDel, views.UniqueConfirmDel, quizID),
		m.Data(messages.BtnCancelDel, views.UniqueCancelDel, quizID),
	))
	return c.Edit(fmt.Sprintf(messages.ConfirmDeleteQuizFmt, quiz.Title), m)
}

// HandleConfirm удаляет квиз после подтверждения.
func (h *DeleteQuizHandler) HandleConfirm(c telebot.Context) error {
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
	if !session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	if err := h.quizzes.Delete(ctx, session.Token, quizID); err != nil {
		return c.Send(api.UserMessage(err))
	}
	if err := c.Edit(messages.DeleteQuizOk); err != nil {
		return err
	}
	return quiz_list_handler.Render(c, h.sessions, h.quizzes, quizService.TabMine, 0)
}

// HandleCancel возвращает карточку управления без изменений.
func (h *DeleteQuizHandler) HandleCancel(c telebot.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Edit(messages.DeleteCanceled)
	}
	quizID := args[0]

	ctx := context.Background()
	session, err := h.sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	quiz, err := h.quizzes.Get(ctx, session.Token, quizID)
	if err != nil {
		return c.Edit(messages.DeleteCanceled)
	}
	text, markup := views.ManageQuiz(&telebot.ReplyMarkup{}, quiz)
	return c.Edit(text, markup)
}
