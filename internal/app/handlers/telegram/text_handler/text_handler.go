package text_handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// TextHandler ведет все диалоги, ожидающие текстовый ввод: вход, регистрацию,
// создание квиза по шагам и редактирование полей. Какой именно шаг сейчас
// активен, определяет UIState из локального хранилища.
type TextHandler struct {
	store    storage.Store
	sessions *sessionService.SessionService
	quizzes  *quizService.QuizService
}

// NewTextHandler возвращает новый экземпляр обработчика.
func NewTextHandler(store storage.Store, sessions *sessionService.SessionService, quizzes *quizService.QuizService) *TextHandler {
	return &TextHandler{store: store, sessions: sessions, quizzes: quizzes}
}

// Handle обрабатывает входящий текст.
func (h *TextHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	state, _, err := h.store.GetState(ctx, userID)
	if err != nil {
		return err
	}

	switch state.UIState {
	case model.UIStateLoginEmail:
		return h.setAuthField(c, state, model.UIStateLoginPassword, messages.PromptLoginPassword, func(f *storage.AuthForm) {
			f.Email = text
		})
	case model.UIStateLoginPassword:
		return h.finishLogin(c, state, text)

	case model.UIStateSignupUsername:
		return h.setAuthField(c, state, model.UIStateSignupEmail, messages.PromptSignupEmail, func(f *storage.AuthForm) {
			f.Username = text
		})
	case model.UIStateSignupEmail:
		return h.setAuthField(c, state, model.UIStateSignupPassword, messages.PromptSignupPassword, func(f *storage.AuthForm) {
			f.Email = text
		})
	case model.UIStateSignupPassword:
		return h.finishSignup(c, state, text)

	case model.UIStateCreateTitle:
		return h.setDraftField(c, state, model.UIStateCreateDesc, messages.PromptCreateDesc, func(d *storage.QuizDraft) {
			d.Title = text
		})
	case model.UIStateCreateDesc:
		return h.setDraftField(c, state, model.UIStateCreateMarks, messages.PromptCreateMarks, func(d *storage.QuizDraft) {
			d.Description = text
		})
	case model.UIStateCreateMarks:
		marks, err := strconv.Atoi(text)
		if err != nil || marks < 0 {
			return c.Send(messages.NeedInteger)
		}
		return h.setDraftField(c, state, model.UIStateCreateTimeLimit, messages.PromptCreateTimeLimit, func(d *storage.QuizDraft) {
			d.TotalMarks = marks
		})
	case model.UIStateCreateTimeLimit:
		limit, err := strconv.Atoi(text)
		if err != nil || limit < 0 {
			return c.Send(messages.NeedInteger)
		}
		return h.setDraftField(c, state, model.UIStateCreateFile, messages.PromptCreateFile, func(d *storage.QuizDraft) {
			d.TimeLimit = limit
		})

	case model.UIStateEditTitle:
		return h.finishEdit(c, state, text, "")
	case model.UIStateEditDesc:
		return h.finishEdit(c, state, "", text)
	}

	return c.Send(messages.UnknownCommand)
}

func (h *TextHandler) setAuthField(c telebot.Context, state storage.ClientState, nextState, prompt string, set func(*storage.AuthForm)) error {
	if state.Auth == nil {
		state.Auth = &storage.AuthForm{}
	}
	set(state.Auth)
	state.UIState = nextState
	if err := h.store.SetState(context.Background(), c.Sender().ID, state); err != nil {
		return err
	}
	return c.Send(prompt)
}

func (h *TextHandler) setDraftField(c telebot.Context, state storage.ClientState, nextState, prompt string, set func(*storage.QuizDraft)) error {
	if state.Draft == nil {
		state.Draft = &storage.QuizDraft{}
	}
	set(state.Draft)
	state.UIState = nextState
	if err := h.store.SetState(context.Background(), c.Sender().ID, state); err != nil {
		return err
	}
	return c.Send(prompt)
}

func (h *TextHandler) finishLogin(c telebot.Context, state storage.ClientState, password string) error {
	ctx := context.Background()
	userID := c.Sender().ID

	email := ""
	if state.Auth != nil {
		email = state.Auth.Email
	}

	// Сообщение с паролем удаляем из чата сразу.
	_ = c.Bot().Delete(c.Message())

	session, err := h.sessions.Login(ctx, userID, email, password)
	if err != nil {
		if err == sessionService.ErrInvalidCredentials {
			if stErr := storage.UpdateState(ctx, h.store, userID, func(st *storage.ClientState) {
				st.UIState = model.UIStateLoginEmail
				st.Auth = nil
			}); stErr != nil {
				return stErr
			}
			return c.Send(messages.LoginFailed)
		}
		return c.Send(api.UserMessage(err))
	}

	if err := storage.UpdateState(ctx, h.store, userID, func(st *storage.ClientState) {
		st.UIState = model.UIStateNone
		st.Auth = nil
	}); err != nil {
		return err
	}
	return c.Send(fmt.Sprintf(messages.LoginOkFmt, session.User.Username),
		views.MainMenu(&telebot.ReplyMarkup{}, true))
}

func (h *TextHandler) finishSignup(c telebot.Context, state storage.ClientState, password string) error {
	ctx := context.Background()
	userID := c.Sender().ID

	username, email := "", ""
	if state.Auth != nil {
		username, email = state.Auth.Username, state.Auth.Email
	}

	_ = c.Bot().Delete(c.Message())

	session, err := h.sessions.Signup(ctx, userID, username, email, password)
	if err != nil {
		if api.IsValidation(err) {
			// Сервер отверг данные формы: начинаем регистрацию заново.
			if stErr := storage.UpdateState(ctx, h.store, userID, func(st *storage.ClientState) {
				st.UIState = model.UIStateSignupUsername
				st.Auth = nil
			}); stErr != nil {
				return stErr
			}
			return c.Send(api.UserMessage(err) + "\n\n" + messages.PromptSignupUsername)
		}
		return c.Send(api.UserMessage(err))
	}

	if err := storage.UpdateState(ctx, h.store, userID, func(st *storage.ClientState) {
		st.UIState = model.UIStateNone
		st.Auth = nil
	}); err != nil {
		return err
	}
	return c.Send(fmt.Sprintf(messages.SignupOkFmt, session.User.Username),
		views.MainMenu(&telebot.ReplyMarkup{}, true))
}

func (h *TextHandler) finishEdit(c telebot.Context, state storage.ClientState, title, description string) error {
	ctx := context.Background()
	userID := c.Sender().ID

	if state.Draft == nil || state.Draft.EditingQuizID == "" {
		return c.Send(messages.UnknownCommand)
	}
	quizID := state.Draft.EditingQuizID

	session, err := h.sessions.Session(ctx, userID)
	if err != nil {
		return err
	}
	if !session.Authenticated() {
		return c.Send(messages.AuthRequired)
	}

	if err := h.quizzes.Rename(ctx, session.Token, quizID, title, description); err != nil {
		return c.Send(api.UserMessage(err))
	}

	if err := storage.UpdateState(ctx, h.store, userID, func(st *storage.ClientState) {
		st.UIState = model.UIStateNone
		st.Draft = nil
	}); err != nil {
		return err
	}

	// После мутации карточка запрашивается заново: сервер — источник истины.
	quiz, err := h.quizzes.Get(ctx, session.Token, quizID)
	if err != nil {
		return c.Send(messages.EditOk)
	}
	text, markup := views.ManageQuiz(&telebot.ReplyMarkup{}, quiz)
	return c.Send(messages.EditOk+"\n\n"+text, markup)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *TextHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
