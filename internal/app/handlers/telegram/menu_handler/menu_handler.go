package menu_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// MenuHandler показывает главное меню по кнопке «В меню».
type MenuHandler struct {
	sessions *sessionService.SessionService
}

// NewMenuHandler возвращает новый экземпляр обработчика.
func NewMenuHandler(sessions *sessionService.SessionService) *MenuHandler {
	return &MenuHandler{sessions: sessions}
}

// Handle обрабатывает callback главного меню.
func (h *MenuHandler) Handle(c telebot.Context) error {
	session, err := h.sessions.Session(context.Background(), c.Sender().ID)
	if err != nil {
		return err
	}
	text := fmt.Sprintf(messages.WelcomeGuestFmt, c.Sender().FirstName)
	if session.Authenticated() {
		text = fmt.Sprintf(messages.WelcomeUserFmt, session.User.Username)
	}
	return c.Edit(text, views.MainMenu(&telebot.ReplyMarkup{}, session.Authenticated()))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *MenuHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
