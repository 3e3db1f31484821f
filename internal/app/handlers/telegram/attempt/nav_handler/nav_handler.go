package nav_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
)

// NavHandler листает вопросы попытки вперед и назад.
type NavHandler struct {
	attempts *attemptService.AttemptService
}

// NewNavHandler возвращает новый экземпляр обработчика.
func NewNavHandler(attempts *attemptService.AttemptService) *NavHandler {
	return &NavHandler{attempts: attempts}
}

// HandleNext переходит к следующему вопросу.
func (h *NavHandler) HandleNext(c telebot.Context) error {
	return h.move(c, 1)
}

// HandlePrev переходит к предыдущему вопросу.
func (h *NavHandler) HandlePrev(c telebot.Context) error {
	return h.move(c, -1)
}

func (h *NavHandler) move(c telebot.Context, delta int) error {
	userID := c.Sender().ID

	var err error
	if delta > 0 {
		_, err = h.attempts.Next(userID)
	} else {
		_, err = h.attempts.Prev(userID)
	}
	if err != nil {
		return c.Send(messages.NoActiveAttempt)
	}

	attempt, ok := h.attempts.Get(userID)
	if !ok {
		return c.Send(messages.NoActiveAttempt)
	}
	text, markup := views.Question(&telebot.ReplyMarkup{}, attempt)
	return c.Edit(text, markup, telebot.ModeMarkdown)
}
