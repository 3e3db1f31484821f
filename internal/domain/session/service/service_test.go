package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newService(fn roundTripFunc) (*SessionService, storage.Store) {
	client := api.NewClientWithHTTP("http://api.test", &http.Client{Transport: fn})
	store := storage.NewMemoryStore()
	return NewSessionService(client, store), store
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestLoginPersistsSession(t *testing.T) {
	svc, store := newService(func(r *http.Request) (*http.Response, error) {
		switch r.URL.Path {
		case "/auth/login":
			return jsonResponse(http.StatusOK, `{"token":"tok","user":{"id":"u1","username":"ivan"}}`), nil
		case "/auth/user":
			return jsonResponse(http.StatusOK, `{"user":{"id":"u1","username":"ivan"}}`), nil
		}
		t.Errorf("неожиданный запрос: %s", r.URL.Path)
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	session, err := svc.Login(context.Background(), 7, "ivan@test.ru", "secret")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if session.Token != "tok" || !session.Authenticated() {
		t.Errorf("сессия не установлена: %+v", session)
	}

	state, ok, _ := store.GetState(context.Background(), 7)
	if !ok || state.Session.Token != "tok" || state.Session.User == nil {
		t.Errorf("сессия не сохранена в хранилище: %+v", state)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, store := newService(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"message":"bad credentials"}`), nil
	})

	_, err := svc.Login(context.Background(), 7, "ivan@test.ru", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено %v", err)
	}

	state, _, _ := store.GetState(context.Background(), 7)
	if state.Session.Token != "" || state.Session.User != nil {
		t.Errorf("сессия не должна устанавливаться при неверных данных: %+v", state.Session)
	}
}

func TestFetchCurrentUserUnauthorizedClearsSession(t *testing.T) {
	svc, store := newService(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{}`), nil
	})

	if err := store.SetState(context.Background(), 7, storage.ClientState{
		Session: sessionWithToken("stale-token"),
	}); err != nil {
		t.Fatal(err)
	}

	user, err := svc.FetchCurrentUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("401 не должен быть ошибкой: %v", err)
	}
	if user != nil {
		t.Errorf("пользователь должен быть nil, получено %+v", user)
	}

	state, _, _ := store.GetState(context.Background(), 7)
	if state.Session.Token != "" || state.Session.User != nil {
		t.Errorf("401 должен очищать и токен, и пользователя: %+v", state.Session)
	}
}

func TestFetchCurrentUserTransportErrorKeepsToken(t *testing.T) {
	svc, store := newService(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	if err := store.SetState(context.Background(), 7, storage.ClientState{
		Session: sessionWithToken("tok"),
	}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.FetchCurrentUser(context.Background(), 7)
	if err == nil {
		t.Fatal("ожидалась ошибка транспорта")
	}

	state, _, _ := store.GetState(context.Background(), 7)
	if state.Session.Token != "tok" {
		t.Errorf("временный сбой не должен удалять токен: %+v", state.Session)
	}
	if state.Session.User != nil {
		t.Errorf("пользователь при сбое должен быть сброшен: %+v", state.Session)
	}
}

func TestFetchCurrentUserExpiredTokenSkipsRequest(t *testing.T) {
	requests := 0
	svc, store := newService(func(r *http.Request) (*http.Response, error) {
		requests++
		return jsonResponse(http.StatusOK, `{"user":{"id":"u1"}}`), nil
	})

	expired := signedToken(t, time.Now().Add(-time.Hour))
	if err := store.SetState(context.Background(), 7, storage.ClientState{
		Session: sessionWithToken(expired),
	}); err != nil {
		t.Fatal(err)
	}

	user, err := svc.FetchCurrentUser(context.Background(), 7)
	if err != nil || user != nil {
		t.Fatalf("истекший токен: user=%v err=%v", user, err)
	}
	if requests != 0 {
		t.Errorf("запрос с заведомо истекшим токеном не должен отправляться, отправлено %d", requests)
	}

	state, _, _ := store.GetState(context.Background(), 7)
	if state.Session.Token != "" {
		t.Errorf("истекший токен должен быть удален: %+v", state.Session)
	}
}

func TestLogoutClearsSessionUnconditionally(t *testing.T) {
	svc, store := newService(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("server down")
	})

	if err := store.SetState(context.Background(), 7, storage.ClientState{
		Session: sessionWithToken("tok"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(context.Background(), 7); err != nil {
		t.Fatalf("выход не должен зависеть от сервера: %v", err)
	}

	state, _, _ := store.GetState(context.Background(), 7)
	if state.Session.Token != "" || state.Session.User != nil {
		t.Errorf("сессия должна быть очищена: %+v", state.Session)
	}
}

func TestSubscribeNotified(t *testing.T) {
	svc, _ := newService(func(r *http.Request) (*http.Response, error) {
		switch r.URL.Path {
		case "/auth/login":
			return jsonResponse(http.StatusOK, `{"token":"tok","user":{"id":"u1","username":"ivan"}}`), nil
		case "/auth/user":
			return jsonResponse(http.StatusOK, `{"user":{"id":"u1","username":"ivan"}}`), nil
		}
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})

	var last model.Session
	notified := 0
	svc.Subscribe(func(userID int64, session model.Session) {
		notified++
		last = session
	})

	if _, err := svc.Login(context.Background(), 7, "ivan@test.ru", "secret"); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if notified == 0 {
		t.Fatal("подписчик не был уведомлен об изменении сессии")
	}
	if !last.Authenticated() {
		t.Errorf("последнее уведомление должно нести авторизованную сессию: %+v", last)
	}

	if err := svc.Logout(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if last.Authenticated() {
		t.Errorf("после выхода подписчик должен получить пустую сессию: %+v", last)
	}
}

func sessionWithToken(token string) model.Session {
	return model.Session{
		Token: token,
		User:  &model.UserSummary{ID: "u1", Username: "ivan"},
	}
}

// signedToken выпускает HS256-токен с заданным exp. Подпись произвольная:
// клиент читает claims без проверки.
func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("не удалось подписать токен: %v", err)
	}
	return signed
}
