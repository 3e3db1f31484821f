package timer

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// offlineBot поднимает бота без сети: ответы Telegram API подменены заглушкой.
func offlineBot(t *testing.T) *telebot.Bot {
	t.Helper()
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   "test-token",
		Offline: true,
		Client: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK,
				`{"ok":true,"result":{"message_id":5,"chat":{"id":7,"type":"private"}}}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("не удалось создать бота: %v", err)
	}
	return bot
}

const quizBody = `{"quiz":{"_id":"q1","title":"Квиз","totalMarks":3,"timeLimit":2,"questions":[
	{"_id":"w1","text":"Вопрос 1","options":["a","b"]},
	{"_id":"w2","text":"Вопрос 2","options":["c","d"]}
]}}`

func newAttempts(submits *int64) *attemptService.AttemptService {
	client := api.NewClientWithHTTP("http://api.test", &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quiz/q1":
			return jsonResponse(http.StatusOK, quizBody), nil
		case r.Method == http.MethodPost && r.URL.Path == "/quiz/q1/attempt":
			atomic.AddInt64(submits, 1)
			return jsonResponse(http.StatusOK, `{"score":1,"review":[]}`), nil
		}
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})})
	return attemptService.NewAttemptService(client, storage.NewMemoryStore())
}

func TestExpireSubmitsExactlyOnce(t *testing.T) {
	var submits int64
	attempts := newAttempts(&submits)

	var results int64
	updater := NewTimerUpdater(offlineBot(t), attempts, func(userID int64) {
		atomic.AddInt64(&results, 1)
	})

	attempt, err := attempts.Start(context.Background(), 7, "", "q1")
	if err != nil {
		t.Fatal(err)
	}
	attempt.SetTimerMessageID(5)

	// Истечение времени сдает попытку автоматически.
	updater.expire(7, attempt)
	if got := atomic.LoadInt64(&submits); got != 1 {
		t.Fatalf("запросов сдачи %d, ожидался ровно один", got)
	}
	if got := atomic.LoadInt64(&results); got != 1 {
		t.Errorf("результат показан %d раз, ожидался один", got)
	}
	if attempt.Status() != attemptService.StatusCompleted {
		t.Errorf("статус после истечения времени = %q, ожидался completed", attempt.Status())
	}

	// Повторное срабатывание (пользователь успел нажать «Завершить» сам или
	// тик пришел дважды) не отправляет вторую сдачу и не дублирует результат.
	updater.expire(7, attempt)
	if got := atomic.LoadInt64(&submits); got != 1 {
		t.Errorf("после повторного истечения запросов сдачи %d, ожидался один", got)
	}
	if got := atomic.LoadInt64(&results); got != 1 {
		t.Errorf("после повторного истечения результат показан %d раз, ожидался один", got)
	}
}

func TestRunStopsWhenAttemptAborted(t *testing.T) {
	var submits int64
	attempts := newAttempts(&submits)
	updater := NewTimerUpdater(offlineBot(t), attempts, nil)

	attempt, err := attempts.Start(context.Background(), 7, "", "q1")
	if err != nil {
		t.Fatal(err)
	}
	attempts.Abort(7)

	// Контекст снятой попытки отменен: Run обязан вернуться, не сдавая ее.
	done := make(chan struct{})
	go func() {
		updater.Run(attempt)
		close(done)
	}()
	<-done

	if got := atomic.LoadInt64(&submits); got != 0 {
		t.Errorf("снятая попытка не должна сдаваться, запросов %d", got)
	}
}
