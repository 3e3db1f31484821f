package abort_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
)

// AbortHandler прерывает попытку без сдачи. Ответы остаются в локальном
// хранилище и восстановятся при следующем запуске этого квиза.
type AbortHandler struct {
	bot      *telebot.Bot
	attempts *attemptService.AttemptService
}

// NewAbortHandler возвращает новый экземпляр обработчика.
func NewAbortHandler(bot *telebot.Bot, attempts *attemptService.AttemptService) *AbortHandler {
	return &AbortHandler{bot: bot, attempts: attempts}
}

// Handle обрабатывает нажатие кнопки «Прервать».
func (h *AbortHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID

	if attempt, ok := h.attempts.Get(userID); ok {
		if msgID := attempt.TimerMessageID(); msgID != 0 {
			_ = h.bot.Delete(&telebot.Message{ID: msgID, Chat: &telebot.Chat{ID: userID}})
		}
	}
	h.attempts.Abort(userID)

	m := &telebot.ReplyMarkup{}
	m.Inline(m.Row(m.Data(messages.BtnBackToMenu, views.UniqueMenu)))
	return c.Edit(messages.AttemptAborted, m)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *AbortHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
