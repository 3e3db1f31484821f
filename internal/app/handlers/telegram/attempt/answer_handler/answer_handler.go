package answer_handler

import (
	"context"
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
)

// AnswerHandler записывает выбранный вариант ответа и перерисовывает
// карточку вопроса с отметкой выбора.
type AnswerHandler struct {
	attempts *attemptService.AttemptService
}

// NewAnswerHandler возвращает новый экземпляр обработчика.
func NewAnswerHandler(attempts *attemptService.AttemptService) *AnswerHandler {
	return &AnswerHandler{attempts: attempts}
}

// Handle обрабатывает callback с аргументами (ID вопроса, индекс варианта).
func (h *AnswerHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return nil
	}
	questionID := args[0]
	optionIndex, err := strconv.Atoi(args[1])
	if err != nil {
		return nil
	}

	userID := c.Sender().ID
	attempt, ok := h.attempts.Get(userID)
	if !ok {
		return c.Send(messages.NoActiveAttempt)
	}

	var option string
	for _, question := range attempt.Questions() {
		if question.ID == questionID {
			if optionIndex < 0 || optionIndex >= len(question.Options) {
				return nil
			}
			option = question.Options[optionIndex]
			break
		}
	}
	if option == "" {
		return nil
	}

	// Повторное нажатие того же варианта карточку не меняет.
	if selected, ok := attempt.SelectedOption(questionID); ok && selected == option {
		return nil
	}

	if err := h.attempts.Answer(context.Background(), userID, questionID, option); err != nil {
		if err == attemptService.ErrNoAttempt {
			return c.Send(messages.NoActiveAttempt)
		}
		return err
	}

	text, markup := views.Question(&telebot.ReplyMarkup{}, attempt)
	return c.Edit(text, markup, telebot.ModeMarkdown)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
