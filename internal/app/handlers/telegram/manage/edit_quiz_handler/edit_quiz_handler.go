package edit_quiz_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// EditQuizHandler запускает редактирование названия или описания квиза:
// запоминает, какой квиз редактируется, и ждет текст через text_handler.
type EditQuizHandler struct {
	store storage.Store
}

// NewEditQuizHandler возвращает новый экземпляр обработчика.
func NewEditQuizHandler(store storage.Store) *EditQuizHandler {
	return &EditQuizHandler{store: store}
}

// HandleTitle обрабатывает кнопку «Название» (аргумент — ID квиза).
func (h *EditQuizHandler) HandleTitle(c telebot.Context) error {
	return h.begin(c, model.UIStateEditTitle, messages.PromptEditTitle)
}

// HandleDescription обрабатывает кнопку «Описание» (аргумент — ID квиза).
func (h *EditQuizHandler) HandleDescription(c telebot.Context) error {
	return h.begin(c, model.UIStateEditDesc, messages.PromptEditDesc)
}

func (h *EditQuizHandler) begin(c telebot.Context, uiState, prompt string) error {
	args := c.Args()
	if len(args) < 1 {
		return nil
	}
	quizID := args[0]

	err := storage.UpdateState(context.Background(), h.store, c.Sender().ID, func(state *storage.ClientState) {
		state.UIState = uiState
		state.Draft = &storage.QuizDraft{EditingQuizID: quizID}
	})
	if err != nil {
		return err
	}
	return c.Send(prompt)
}
