// Package views собирает построение клавиатур и текстов, общих для
// нескольких обработчиков: главное меню, список квизов, карточка вопроса.
package views

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/app/messages"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

// Уникальные идентификаторы callback-кнопок. Регистрация обработчиков
// в app и построение клавиатур здесь обязаны использовать одни и те же значения.
const (
	UniqueLogin      = "login"
	UniqueSignup     = "signup"
	UniqueLogout     = "logout"
	UniqueQuizList   = "quiz_list"
	UniqueCreateQuiz = "create_quiz"
	UniqueTab        = "quiz_tab"
	UniqueNextPage   = "next_page"
	UniquePrevPage   = "prev_page"
	UniqueOpenQuiz   = "open_quiz"
	UniqueAttempt    = "begin_attempt"
	UniqueAnswer     = "answer"
	UniqueNextQ      = "next_question"
	UniquePrevQ      = "prev_question"
	UniqueSubmit     = "submit_attempt"
	UniqueAbort      = "abort_attempt"
	UniqueManage     = "manage_quiz"
	UniqueEditTitle  = "edit_title"
	UniqueEditDesc   = "edit_desc"
	UniqueToggleVis  = "toggle_vis"
	UniqueDeleteQuiz = "delete_quiz"
	UniqueConfirmDel = "confirm_delete"
	UniqueCancelDel  = "cancel_delete"
	UniquePickDelQ   = "pick_del_question"
	UniqueDeleteQ    = "delete_question"
	UniqueMenu       = "main_menu"
)

// PageSize — количество квизов на одной странице списка.
const PageSize = 5

// MainMenu строит главное меню в зависимости от состояния сессии.
func MainMenu(m *telebot.ReplyMarkup, authenticated bool) *telebot.ReplyMarkup {
	if authenticated {
		m.Inline(
			m.Row(m.Data(messages.BtnAllQuizzes, UniqueQuizList)),
			m.Row(m.Data(messages.BtnMyQuizzes, UniqueTab, "mine")),
			m.Row(m.Data(messages.BtnCreate, UniqueCreateQuiz)),
			m.Row(m.Data(messages.BtnLogout, UniqueLogout)),
		)
		return m
	}
	m.Inline(
		m.Row(m.Data(messages.BtnAllQuizzes, UniqueQuizList)),
		m.Row(m.Data(messages.BtnLogin, UniqueLogin), m.Data(messages.BtnSignup, UniqueSignup)),
	)
	return m
}

// QuizList строит страницу списка квизов: заголовок, кнопки квизов и
// навигацию. Страницы нумеруются с нуля, в подписи — с единицы.
func QuizList(m *telebot.ReplyMarkup, quizzes []model.Quiz, tab string, page int, authenticated bool) (string, *telebot.ReplyMarkup) {
	totalPages := (len(quizzes) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	headerFmt := messages.QuizListHeaderAll
	if tab == "mine" {
		headerFmt = messages.QuizListHeaderMine
	}
	header := fmt.Sprintf(headerFmt, page+1, totalPages)

	start := page * PageSize
	end := start + PageSize
	if end > len(quizzes) {
		end = len(quizzes)
	}

	rows := make([]telebot.Row, 0, PageSize+2)
	for _, quiz := range quizzes[start:end] {
		rows = append(rows, m.Row(m.Data(quiz.Title, UniqueOpenQuiz, quiz.ID, tab)))
	}

	nav := make([]telebot.Btn, 0, 2)
	if page > 0 {
		nav = append(nav, m.Data(messages.BtnPrevPage, UniquePrevPage, tab, strconv.Itoa(page)))
	}
	if page < totalPages-1 {
		nav = append(nav, m.Data(messages.BtnNextPage, UniqueNextPage, tab, strconv.Itoa(page)))
	}
	if len(nav) > 0 {
		rows = append(rows, m.Row(nav...))
	}
	if authenticated {
		other := "mine"
		label := messages.BtnTabMine
		if tab == "mine" {
			other, label = "all", messages.BtnTabAll
		}
		rows = append(rows, m.Row(m.Data(label, UniqueTab, other)))
	}
	rows = append(rows, m.Row(m.Data(messages.BtnBackToMenu, UniqueMenu)))
	m.Inline(rows...)

	if len(quizzes) == 0 {
		return messages.QuizListEmpty, m
	}
	return header, m
}

// Question строит карточку текущего вопроса попытки: текст с номером,
// кнопки вариантов (выбранный помечается), навигацию и завершение.
func Question(m *telebot.ReplyMarkup, attempt *attemptService.Attempt) (string, *telebot.ReplyMarkup) {
	index, question := attempt.Current()
	text := fmt.Sprintf(messages.QuestionHeaderFmt, index+1, attempt.Total(), question.Text)

	selected, _ := attempt.SelectedOption(question.ID)

	rows := make([]telebot.Row, 0, len(question.Options)+2)
	for i, option := range question.Options {
		label := fmt.Sprintf("%d. %s", i+1, option)
		if option == selected {
			label = "✅ " + label
		}
		rows = append(rows, m.Row(m.Data(label, UniqueAnswer, question.ID, strconv.Itoa(i))))
	}

	nav := make([]telebot.Btn, 0, 2)
	if index > 0 {
		nav = append(nav, m.Data(messages.BtnPrevQ, UniquePrevQ))
	}
	if index < attempt.Total()-1 {
		nav = append(nav, m.Data(messages.BtnNextQ, UniqueNextQ))
	}
	if len(nav) > 0 {
		rows = append(rows, m.Row(nav...))
	}
	rows = append(rows, m.Row(m.Data(messages.BtnSubmit, UniqueSubmit), m.Data(messages.BtnAbort, UniqueAbort)))
	m.Inline(rows...)

	return text, m
}

// Result строит текст с результатом и разбором ответов.
func Result(quiz *model.Quiz, result *model.AttemptResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(messages.ResultFmt, result.Score, quiz.TotalMarks))
	if len(result.Review) > 0 {
		b.WriteString("\n\nРазбор:")
		for i, item := range result.Review {
			mark := messages.ReviewWrong
			if item.IsCorrect {
				mark = messages.ReviewCorrect
			}
			b.WriteString(fmt.Sprintf("\n%s %d. %s\nВаш ответ: %s", mark, i+1, item.QuestionText, item.SelectedAnswer))
			if !item.IsCorrect {
				b.WriteString(fmt.Sprintf("\nПравильный: %s", item.CorrectAnswer))
			}
		}
	}
	return b.String()
}

// ManageQuiz строит карточку управления собственным квизом.
func ManageQuiz(m *telebot.ReplyMarkup, quiz *model.Quiz) (string, *telebot.ReplyMarkup) {
	visibility := "скрыт"
	if quiz.IsPublic {
		visibility = "публичный"
	}
	text := fmt.Sprintf("⚙️ «%s»\n%s\n\nВопросов: %d, балл: %d, видимость: %s",
		quiz.Title, quiz.Description, len(quiz.Questions), quiz.TotalMarks, visibility)

	visLabel := messages.BtnMakePublic
	if quiz.IsPublic {
		visLabel = messages.BtnMakeHidden
	}
	m.Inline(
		m.Row(m.Data(messages.BtnStartQuiz, UniqueAttempt, quiz.ID)),
		m.Row(m.Data(messages.BtnEditTitle, UniqueEditTitle, quiz.ID), m.Data(messages.BtnEditDesc, UniqueEditDesc, quiz.ID)),
		m.Row(m.Data(visLabel, UniqueToggleVis, quiz.ID, strconv.FormatBool(quiz.IsPublic))),
		m.Row(m.Data(messages.BtnDeleteQ, UniquePickDelQ, quiz.ID)),
		m.Row(m.Data(messages.BtnDeleteQuiz, UniqueDeleteQuiz, quiz.ID)),
		m.Row(m.Data(messages.BtnBackToMenu, UniqueMenu)),
	)
	return text, m
}
