package signup_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// SignupHandler запускает диалог регистрации.
type SignupHandler struct {
	store storage.Store
}

// NewSignupHandler возвращает новый экземпляр обработчика.
func NewSignupHandler(store storage.Store) *SignupHandler {
	return &SignupHandler{store: store}
}

// Handle обрабатывает нажатие кнопки «Регистрация».
func (h *SignupHandler) Handle(c telebot.Context) error {
	err := storage.UpdateState(context.Background(), h.store, c.Sender().ID, func(state *storage.ClientState) {
		state.UIState = model.UIStateSignupUsername
	})
	if err != nil {
		return err
	}
	return c.Send(messages.PromptSignupUsername)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *SignupHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
