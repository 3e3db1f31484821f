package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized возвращается при ответе 401: токен недействителен или истек.
// Обработчики по этой ошибке сбрасывают сессию и отправляют пользователя на вход.
var ErrUnauthorized = errors.New("api: не авторизован")

// APIError — ошибка уровня HTTP с сообщением, которое вернул сервер.
// Для 4xx сообщение показывается пользователю как есть (ошибка валидации формы),
// 5xx обрабатывается как временный сбой сервера.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: статус %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: статус %d", e.StatusCode)
}

// IsValidation сообщает, является ли ошибка ошибкой валидации (4xx, кроме 401).
// Состояние формы при такой ошибке сохраняется, чтобы пользователь мог исправить ввод.
func IsValidation(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusUnauthorized
	}
	return false
}

// UserMessage возвращает текст ошибки для показа пользователю:
// для ошибок валидации — сообщение сервера, для остальных — общий текст.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && IsValidation(err) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthorized) {
		return "Сессия истекла. Пожалуйста, войдите снова."
	}
	return "Сервис временно недоступен. Попробуйте еще раз."
}
