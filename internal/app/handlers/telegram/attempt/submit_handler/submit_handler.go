package submit_handler

import (
	"log"
	"os"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	"github.com/Kritika122297/QuizMaster/report"
)

// SubmitHandler сдает попытку по кнопке «Завершить» и показывает результат.
// Метод Finish используется также таймером при автоматической сдаче.
type SubmitHandler struct {
	bot      *telebot.Bot
	attempts *attemptService.AttemptService
}

// NewSubmitHandler возвращает новый экземпляр обработчика.
func NewSubmitHandler(bot *telebot.Bot, attempts *attemptService.AttemptService) *SubmitHandler {
	return &SubmitHandler{bot: bot, attempts: attempts}
}

// Handle обрабатывает нажатие кнопки «Завершить».
func (h *SubmitHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID

	attempt, ok := h.attempts.Get(userID)
	if !ok {
		return c.Send(messages.NoActiveAttempt)
	}

	_ = c.Edit(messages.SubmittingNote)

	if _, err := h.attempts.Submit(userID); err != nil {
		if err == attemptService.ErrAlreadySubmitted {
			// Сдача уже идет (повторное нажатие или таймер) — ничего не делаем.
			return nil
		}
		// Попытка вернулась в active: восстанавливаем карточку вопроса.
		text, markup := views.Question(&telebot.ReplyMarkup{}, attempt)
		_ = c.Edit(text, markup, telebot.ModeMarkdown)
		return c.Send(messages.SubmitFailed + "\n" + api.UserMessage(err))
	}

	h.Finish(userID)
	return nil
}

// Finish убирает сообщения попытки, показывает результат с разбором и
// отправляет PDF-отчет. Вызывается после успешной сдачи — ручной или по таймеру.
func (h *SubmitHandler) Finish(userID int64) {
	attempt, ok := h.attempts.Get(userID)
	if !ok {
		return
	}
	result := attempt.Result()
	if result == nil {
		return
	}
	quiz := attempt.Quiz()
	recipient := &telebot.User{ID: userID}

	for _, msgID := range []int{attempt.TimerMessageID(), attempt.QuestionMessageID()} {
		if msgID == 0 {
			continue
		}
		if err := h.bot.Delete(&telebot.Message{ID: msgID, Chat: &telebot.Chat{ID: userID}}); err != nil {
			log.Printf("submit: не удалось удалить сообщение %d для %d: %v", msgID, userID, err)
		}
	}

	if _, err := h.bot.Send(recipient, views.Result(quiz, result)); err != nil {
		log.Printf("submit: не удалось отправить результат пользователю %d: %v", userID, err)
	}

	h.sendReport(userID, recipient, attempt)

	// Попытка завершена: снимаем ее из реестра вместе с контекстом.
	h.attempts.Abort(userID)
}

func (h *SubmitHandler) sendReport(userID int64, recipient *telebot.User, attempt *attemptService.Attempt) {
	firstName, username := "", ""
	if chat, err := h.bot.ChatByID(userID); err == nil {
		firstName, username = chat.FirstName, chat.Username
	}

	filename, err := report.GeneratePDFReport(report.ReportData{
		UserID:            userID,
		TelegramFirstName: firstName,
		TelegramUsername:  username,
		QuizTitle:         attempt.Quiz().Title,
		Score:             attempt.Result().Score,
		TotalMarks:        attempt.Quiz().TotalMarks,
		Review:            attempt.Result().Review,
	})
	if err != nil {
		log.Printf("submit: не удалось сформировать отчет для %d: %v", userID, err)
		return
	}
	defer os.Remove(filename)

	doc := &telebot.Document{File: telebot.FromDisk(filename), FileName: filename}
	if _, err := h.bot.Send(recipient, doc); err != nil {
		log.Printf("submit: не удалось отправить отчет пользователю %d: %v", userID, err)
	}
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *SubmitHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
