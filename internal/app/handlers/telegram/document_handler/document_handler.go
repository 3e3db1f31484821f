package document_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// DocumentHandler принимает файл с вопросами — последний шаг создания квиза.
// Файл не разбирается на клиенте: он передается в API как есть, вопросы
// из него генерирует сервер.
type DocumentHandler struct {
	store    storage.Store
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewDocumentHandler возвращает новый экземпляр обработчика.
func NewDocumentHandler(store storage.Store, sessions *sessionService.SessionService, quizzes *quizService.QuizService) *DocumentHandler {
	return &DocumentHandler{store: store, sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает присланный документ.
func (h *DocumentHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	state, _, err := h.store.GetState(ctx, userID)
	if err != nil {
		return err
	}
	if state.UIState != model.UIStateCreateFile || state.Draft == nil {
		return c.Send(messages.UnknownCommand)
	}
	if !state.Session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	doc := c.Message().Document
	if doc == nil {
		return c.Send(messages.PromptCreateFile)
	}

	reader, err := c.Bot().File(&doc.File)
	if err != nil {
		return fmt.Errorf("document: не удалось скачать файл: %w", err)
	}
	defer reader.Close()

	quiz, err := h.quizzes.CreateFromDraft(ctx, userID, state.Session.Token, *state.Draft, doc.FileName, reader)
	if err != nil {
		// Ошибка валидации не сбрасывает черновик: можно прислать другой файл.
		return c.Send(api.UserMessage(err))
	}

	text, markup := views.ManageQuiz(&telebot.ReplyMarkup{}, quiz)
	return c.Send(fmt.Sprintf(messages.CreateOkFmt, quiz.Title)+"\n\n"+text, markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *DocumentHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
