package login_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// LoginHandler запускает диалог входа: дальнейшие шаги собирает text_handler.
type LoginHandler struct {
	store storage.Store
}

// NewLoginHandler возвращает новый экземпляр обработчика.
func NewLoginHandler(store storage.Store) *LoginHandler {
	return &LoginHandler{store: store}
}

// Handle обрабатывает нажатие кнопки «Войти».
func (h *LoginHandler) Handle(c telebot.Context) error {
	err := storage.UpdateState(context.Background(), h.store, c.Sender().ID, func(state *storage.ClientState) {
		state.UIState = model.UIStateLoginEmail
	})
	if err != nil {
		return err
	}
	return c.Send(messages.PromptLoginEmail)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *LoginHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
