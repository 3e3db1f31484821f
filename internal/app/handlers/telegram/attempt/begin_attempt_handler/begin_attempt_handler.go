package begin_attempt_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	"github.com/Kritika122297/QuizMaster/internal/domain/authgate"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
	"github.com/Kritika122297/QuizMaster/internal/infra/timer"
)

// BeginAttemptHandler начинает прохождение квиза: загружает вопросы,
// отправляет первое сообщение с вопросом и, если квиз ограничен по времени,
// сообщение с обратным отсчетом.
type BeginAttemptHandler struct {
	sessions *sessionService.SessionService
	attempts *attemptService.AttemptService
	gate     *authgate.Gate
	timer    *timer.Updater
}

// NewBeginAttemptHandler возвращает новый экземпляр обработчика.
func NewBeginAttemptHandler(
	sessions *sessionService.SessionService,
	attempts *attemptService.AttemptService,
	gate *authgate.Gate,
	timerUpdater *timer.Updater,
) *BeginAttemptHandler {
	return &BeginAttemptHandler{
		sessions: sessions,
		attempts: attempts,
		gate:     gate,
		timer:    timerUpdater,
	}
}

// Handle обрабатывает callback с аргументом (ID квиза).
func (h *BeginAttemptHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return nil
	}
	return h.Begin(c, args[0])
}

// Begin запускает попытку. Используется и из /start по диплинку.
func (h *BeginAttemptHandler) Begin(c telebot.Context, quizID string) error {
	ctx := context.Background()
	userID := c.Sender().ID

	session, err := h.sessions.Session(ctx, userID)
	if err != nil {
		return err
	}
	if decision := h.gate.Decide(session.Authenticated(), model.RouteAttempt); !decision.Allowed {
		m := &telebot.ReplyMarkup{}
		m.Inline(m.Row(m.Data(messages.BtnLogin, views.UniqueLogin), m.Data(messages.BtnSignup, views.UniqueSignup)))
		return c.Send(messages.AuthRequired, m)
	}

	attempt, err := h.attempts.Start(ctx, userID, session.Token, quizID)
	if err != nil {
		return c.Send(api.UserMessage(err))
	}

	quiz := attempt.Quiz()
	if err := c.Send(fmt.Sprintf(messages.AttemptStartFmt, quiz.Title, attempt.Total())); err != nil {
		return err
	}

	if attempt.HasDeadline() {
		timerMsg, err := c.Bot().Send(c.Sender(), messages.TimerInitial)
		if err != nil {
			return fmt.Errorf("attempt: не удалось отправить сообщение таймера: %w", err)
		}
		attempt.SetTimerMessageID(timerMsg.ID)
		go h.timer.Run(attempt)
	}

	text, markup := views.Question(&telebot.ReplyMarkup{}, attempt)
	questionMsg, err := c.Bot().Send(c.Sender(), text, markup, telebot.ModeMarkdown)
	if err != nil {
		return fmt.Errorf("attempt: не удалось отправить вопрос: %w", err)
	}
	attempt.SetQuestionMessageID(questionMsg.ID)
	return nil
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *BeginAttemptHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
