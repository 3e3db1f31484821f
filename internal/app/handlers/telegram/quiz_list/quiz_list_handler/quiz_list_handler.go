package quiz_list_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// QuizListHandler показывает список квизов: вкладку «Все» или «Мои».
type QuizListHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewQuizListHandler возвращает новый экземпляр обработчика.
func NewQuizListHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *QuizListHandler {
	return &QuizListHandler{sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает открытие списка и переключение вкладок.
// Первый аргумент callback — вкладка; без аргументов открывается «Все».
func (h *QuizListHandler) Handle(c telebot.Context) error {
	tab := quizService.TabAll
	if args := c.Args(); len(args) > 0 && args[0] == quizService.TabMine {
		tab = quizService.TabMine
	}
	return Render(c, h.sessions, h.quizzes, tab, 0)
}

// Render загружает список заново и показывает нужную страницу.
// Список никогда не кешируется: после каждой мутации сюда приходят за свежими
// данными. Используется также обработчиками пагинации.
func Render(c telebot.Context, sessions *sessionService.SessionService, quizzes *quizService.QuizService, tab string, page int) error {
	ctx := context.Background()
	session, err := sessions.Session(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if tab == quizService.TabMine && !session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	list, err := quizzes.List(ctx, session.Token, tab)
	if err != nil {
		return c.Send(api.UserMessage(err))
	}

	text, markup := views.QuizList(&telebot.ReplyMarkup{}, list, tab, page, session.Authenticated())
	if c.Callback() != nil {
		return c.Edit(text, markup)
	}
	return c.Send(text, markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *QuizListHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
