package next_page_handler

import (
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/quiz_list/quiz_list_handler"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
)

// NextPageHandler листает список квизов вперед.
type NextPageHandler struct {
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewNextPageHandler возвращает новый экземпляр обработчика.
func NewNextPageHandler(sessions *sessionService.SessionService, quizzes *quizService.QuizService) *NextPageHandler {
	return &NextPageHandler{sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает callback с аргументами (вкладка, текущая страница).
func (h *NextPageHandler) Handle(c telebot.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return nil
	}
	page, err := strconv.Atoi(args[1])
	if err != nil {
		return nil
	}
	return quiz_list_handler.Render(c, h.sessions, h.quizzes, args[0], page+1)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *NextPageHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
