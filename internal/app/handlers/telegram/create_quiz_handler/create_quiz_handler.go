package create_quiz_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/authgate"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// CreateQuizHandler запускает пошаговый диалог создания квиза.
type CreateQuizHandler struct {
	store    storage.Store
	sessions *sessionService.SessionService
	gate     *authgate.Gate
}

// NewCreateQuizHandler возвращает новый экземпляр обработчика.
func NewCreateQuizHandler(store storage.Store, sessions *sessionService.SessionService, gate *authgate.Gate) *CreateQuizHandler {
	return &CreateQuizHandler{store: store, sessions: sessions, gate: gate}
}

// Handle обрабатывает нажатие кнопки «Создать квиз».
func (h *CreateQuizHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	session, err := h.sessions.Session(ctx, userID)
	if err != nil {
		return err
	}
	if decision := h.gate.Decide(session.Authenticated(), model.RouteCreate); !decision.Allowed {
		return c.Send(messages.AuthRequired)
	}

	if err := storage.UpdateState(ctx, h.store, userID, func(state *storage.ClientState) {
		state.UIState = model.UIStateCreateTitle
		state.Draft = &storage.QuizDraft{}
	}); err != nil {
		return err
	}
	return c.Send(messages.PromptCreateTitle)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *CreateQuizHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
