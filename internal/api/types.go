package api

import (
	"io"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

// authResponse — ответ эндпоинтов /auth/login и /auth/signup.
type authResponse struct {
	Token string             `json:"token"`
	User  *model.UserSummary `json:"user"`
}

// userResponse — ответ эндпоинта /auth/user.
type userResponse struct {
	User *model.UserSummary `json:"user"`
}

// quizResponse — ответ эндпоинта /quiz/{id}.
type quizResponse struct {
	Quiz *model.Quiz `json:"quiz"`
}

// quizzesResponse — ответ списковых эндпоинтов /quiz/public, /quiz/all, /quiz/user.
type quizzesResponse struct {
	Quizzes []model.Quiz `json:"quizzes"`
}

// errorResponse — тело ошибки, которое сервер возвращает на неуспешные запросы.
type errorResponse struct {
	Message string `json:"message"`
}

// Credentials — данные формы входа.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupForm — данные формы регистрации.
type SignupForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateQuizForm — данные multipart-формы создания квиза.
// Из файла сервер генерирует вопросы; содержимое на клиенте не разбирается.
type CreateQuizForm struct {
	Title       string
	Description string
	TotalMarks  int
	TimeLimit   int // В минутах; ноль — без ограничения.
	FileName    string
	File        io.Reader
}

// UpdateQuizRequest — частичное обновление метаданных квиза.
// Нулевые указатели означают «поле не меняется».
type UpdateQuizRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TotalMarks  *int    `json:"totalMarks,omitempty"`
	TimeLimit   *int    `json:"timeLimit,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// attemptRequest — тело запроса сдачи квиза: карта questionID -> выбранный вариант.
type attemptRequest struct {
	Answers map[string]string `json:"answers"`
}
