package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

// Client — клиент REST API платформы QuizMaster. Вся бизнес-логика
// (проверка ответов, хранение квизов и пользователей) живет на сервере,
// клиент только ходит по эндпоинтам и разбирает ответы.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создает клиент API с указанным базовым URL и таймаутом запросов.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP создает клиент API с готовым http.Client (используется в тестах).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// do выполняет запрос и разбирает ответ в out (если out != nil).
// Токен добавляется заголовком Authorization: Bearer, если он не пуст.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: не удалось создать запрос: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Транспортная ошибка: сеть недоступна или сервер не отвечает.
		return fmt.Errorf("api: запрос %s %s не выполнен: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: не удалось разобрать ответ %s %s: %w", method, path, err)
		}
	}
	return nil
}

// doJSON сериализует body в JSON и выполняет запрос.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: не удалось сериализовать тело запроса: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, token, reader, "application/json", out)
}

// Login отправляет учетные данные и возвращает токен с данными пользователя.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, *model.UserSummary, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Signup регистрирует нового пользователя и возвращает токен с его данными.
func (c *Client) Signup(ctx context.Context, form SignupForm) (string, *model.UserSummary, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", "", form, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// CurrentUser возвращает пользователя, которому принадлежит токен («кто я»).
func (c *Client) CurrentUser(ctx context.Context, token string) (*model.UserSummary, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout сообщает серверу об инвалидации токена. Вызов выполняется по принципу
// fire-and-forget: локальная сессия очищается независимо от результата.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// PublicQuizzes возвращает список публичных квизов; авторизация не требуется.
func (c *Client) PublicQuizzes(ctx context.Context) ([]model.Quiz, error) {
	var resp quizzesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quiz/public", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// AllQuizzes возвращает список всех доступных пользователю квизов.
func (c *Client) AllQuizzes(ctx context.Context, token string) ([]model.Quiz, error) {
	var resp quizzesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quiz/all", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// MyQuizzes возвращает список квизов, созданных текущим пользователем.
func (c *Client) MyQuizzes(ctx context.Context, token string) ([]model.Quiz, error) {
	var resp quizzesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quiz/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// GetQuiz возвращает квиз с вопросами по его ID.
func (c *Client) GetQuiz(ctx context.Context, token, quizID string) (*model.Quiz, error) {
	var resp quizResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quiz/"+quizID, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Quiz, nil
}

// CreateQuiz отправляет multipart-форму создания квиза: метаданные и файл,
// из которого сервер генерирует вопросы.
func (c *Client) CreateQuiz(ctx context.Context, token string, form CreateQuizForm) (*model.Quiz, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"totalMarks":  fmt.Sprintf("%d", form.TotalMarks),
	}
	if form.TimeLimit > 0 {
		fields["timeLimit"] = fmt.Sprintf("%d", form.TimeLimit)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("api: не удалось записать поле %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("file", form.FileName)
	if err != nil {
		return nil, fmt.Errorf("api: не удалось создать файловую часть: %w", err)
	}
	if _, err := io.Copy(part, form.File); err != nil {
		return nil, fmt.Errorf("api: не удалось записать файл: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: не удалось завершить multipart: %w", err)
	}

	var resp quizResponse
	if err := c.do(ctx, http.MethodPost, "/quiz/create", token, &buf, writer.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return resp.Quiz, nil
}

// UpdateQuiz частично обновляет метаданные или видимость квиза.
func (c *Client) UpdateQuiz(ctx context.Context, token, quizID string, upd UpdateQuizRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/quiz/"+quizID, token, upd, nil)
}

// DeleteQuiz удаляет квиз.
func (c *Client) DeleteQuiz(ctx context.Context, token, quizID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/quiz/"+quizID, token, nil, nil)
}

// DeleteQuestion удаляет отдельный вопрос квиза.
func (c *Client) DeleteQuestion(ctx context.Context, token, questionID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/question/"+questionID, token, nil, nil)
}

// SubmitAttempt отправляет карту ответов на проверку и возвращает результат.
func (c *Client) SubmitAttempt(ctx context.Context, token, quizID string, answers map[string]string) (*model.AttemptResult, error) {
	var resp model.AttemptResult
	if err := c.doJSON(ctx, http.MethodPost, "/quiz/"+quizID+"/attempt", token, attemptRequest{Answers: answers}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
