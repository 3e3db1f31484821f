package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(fn roundTripFunc) *Client {
	return NewClientWithHTTP("http://api.test", &http.Client{Transport: fn})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestLogin(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("неверный запрос: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("логин не должен отправлять токен, получено %q", r.Header.Get("Authorization"))
		}
		return jsonResponse(http.StatusOK, `{"token":"tok-1","user":{"id":"u1","username":"ivan","email":"ivan@test.ru"}}`), nil
	})

	token, user, err := client.Login(context.Background(), Credentials{Email: "ivan@test.ru", Password: "secret"})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("ожидался токен tok-1, получен %q", token)
	}
	if user == nil || user.Username != "ivan" {
		t.Errorf("неверные данные пользователя: %+v", user)
	}
}

func TestUnauthorized(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"message":"invalid token"}`), nil
	})

	_, err := client.CurrentUser(context.Background(), "bad-token")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ожидалась ErrUnauthorized, получено %v", err)
	}
}

func TestValidationError(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnprocessableEntity, `{"message":"Название обязательно"}`), nil
	})

	err := client.UpdateQuiz(context.Background(), "tok", "q1", UpdateQuizRequest{})
	if !IsValidation(err) {
		t.Fatalf("ожидалась ошибка валидации, получено %v", err)
	}
	if got := UserMessage(err); got != "Название обязательно" {
		t.Errorf("ожидалось сообщение сервера, получено %q", got)
	}
}

func TestTransportError(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.PublicQuizzes(context.Background())
	if err == nil {
		t.Fatal("ожидалась транспортная ошибка")
	}
	if IsValidation(err) || errors.Is(err, ErrUnauthorized) {
		t.Errorf("транспортная ошибка классифицирована неверно: %v", err)
	}
}

func TestCreateQuizMultipart(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/quiz/create" {
			t.Errorf("неверный путь: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("неверный заголовок авторизации: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("не удалось разобрать multipart: %v", err)
		}
		if got := r.FormValue("title"); got != "Квиз" {
			t.Errorf("ожидалось поле title=Квиз, получено %q", got)
		}
		if got := r.FormValue("totalMarks"); got != "10" {
			t.Errorf("ожидалось поле totalMarks=10, получено %q", got)
		}
		if got := r.FormValue("timeLimit"); got != "" {
			t.Errorf("timeLimit не должен отправляться при нулевом значении, получено %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("файл не передан: %v", err)
		}
		defer file.Close()
		if header.Filename != "questions.txt" {
			t.Errorf("неверное имя файла: %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "вопросы" {
			t.Errorf("неверное содержимое файла: %q", data)
		}
		return jsonResponse(http.StatusCreated, `{"quiz":{"_id":"q1","title":"Квиз"}}`), nil
	})

	quiz, err := client.CreateQuiz(context.Background(), "tok", CreateQuizForm{
		Title:      "Квиз",
		TotalMarks: 10,
		FileName:   "questions.txt",
		File:       strings.NewReader("вопросы"),
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if quiz == nil || quiz.ID != "q1" {
		t.Errorf("неверный ответ: %+v", quiz)
	}
}

func TestSubmitAttempt(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/quiz/q1/attempt" {
			t.Errorf("неверный путь: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"answers"`) {
			t.Errorf("в теле нет карты ответов: %s", body)
		}
		return jsonResponse(http.StatusOK, `{"score":2,"review":[{"questionId":"w1","isCorrect":true}]}`), nil
	})

	result, err := client.SubmitAttempt(context.Background(), "", "q1", map[string]string{"w1": "42"})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if result.Score != 2 || len(result.Review) != 1 {
		t.Errorf("неверный результат: %+v", result)
	}
}
