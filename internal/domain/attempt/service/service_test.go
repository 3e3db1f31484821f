package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Kritika122297/QuizMaster/internal/api"
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

const quizBody = `{"quiz":{"_id":"q1","title":"Квиз","totalMarks":3,"timeLimit":2,"questions":[
	{"_id":"w1","text":"Вопрос 1","options":["a","b"]},
	{"_id":"w2","text":"Вопрос 2","options":["c","d"]},
	{"_id":"w3","text":"Вопрос 3","options":["e","f"]}
]}}`

// newService поднимает сервис с фиктивным API: квиз q1 и счетчик сдач.
func newService(submitStatus int, submitCount *int64) (*AttemptService, storage.Store) {
	client := api.NewClientWithHTTP("http://api.test", &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quiz/q1":
			return jsonResponse(http.StatusOK, quizBody), nil
		case r.Method == http.MethodPost && r.URL.Path == "/quiz/q1/attempt":
			if submitCount != nil {
				atomic.AddInt64(submitCount, 1)
			}
			if submitStatus != http.StatusOK {
				return jsonResponse(submitStatus, `{"message":"boom"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"score":2,"review":[]}`), nil
		}
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})})
	store := storage.NewMemoryStore()
	return NewAttemptService(client, store), store
}

func TestStartShufflesWithoutLoss(t *testing.T) {
	svc, _ := newService(http.StatusOK, nil)

	attempt, err := svc.Start(context.Background(), 7, "", "q1")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if attempt.Status() != StatusActive {
		t.Errorf("статус после загрузки = %q, ожидался active", attempt.Status())
	}
	if attempt.Total() != 3 {
		t.Fatalf("ожидалось 3 вопроса, получено %d", attempt.Total())
	}

	seen := make(map[string]bool)
	for _, q := range attempt.Questions() {
		seen[q.ID] = true
	}
	for _, id := range []string{"w1", "w2", "w3"} {
		if !seen[id] {
			t.Errorf("после перемешивания пропал вопрос %s", id)
		}
	}

	if !attempt.HasDeadline() {
		t.Fatal("квиз с timeLimit должен иметь дедлайн")
	}
	if remaining := attempt.RemainingSeconds(); remaining <= 100 || remaining > 120 {
		t.Errorf("оставшееся время %d не соответствует лимиту в 2 минуты", remaining)
	}
}

func TestAnswerLastWriteWinsAndPersists(t *testing.T) {
	svc, store := newService(http.StatusOK, nil)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 7, "", "q1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Answer(ctx, 7, "w1", "a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Answer(ctx, 7, "w1", "b"); err != nil {
		t.Fatal(err)
	}

	attempt, _ := svc.Get(7)
	if got := attempt.Answers()["w1"]; got != "b" {
		t.Errorf("последний выбор должен побеждать: получено %q", got)
	}

	saved, ok, err := store.GetAnswers(ctx, 7, "q1")
	if err != nil || !ok {
		t.Fatalf("ответы не сохранены: ok=%t err=%v", ok, err)
	}
	if saved["w1"] != "b" {
		t.Errorf("в хранилище устаревший ответ: %q", saved["w1"])
	}
}

func TestStartRestoresSavedAnswers(t *testing.T) {
	svc, store := newService(http.StatusOK, nil)
	ctx := context.Background()

	if err := store.SetAnswers(ctx, 7, "q1", map[string]string{"w2": "c"}); err != nil {
		t.Fatal(err)
	}

	attempt, err := svc.Start(ctx, 7, "", "q1")
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := attempt.SelectedOption("w2"); !ok || got != "c" {
		t.Errorf("сохраненный ответ не восстановлен: %q, ok=%t", got, ok)
	}
}

func TestSubmitAtMostOnce(t *testing.T) {
	var submits int64
	svc, store := newService(http.StatusOK, &submits)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 7, "", "q1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Answer(ctx, 7, "w1", "a"); err != nil {
		t.Fatal(err)
	}

	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(7); err == nil {
				atomic.AddInt64(&successes, 1)
			} else if !errors.Is(err, ErrAlreadySubmitted) {
				t.Errorf("неожиданная ошибка: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("успешных сдач %d, ожидалась ровно одна", successes)
	}
	if got := atomic.LoadInt64(&submits); got != 1 {
		t.Errorf("запросов сдачи %d, ожидался ровно один", got)
	}

	attempt, _ := svc.Get(7)
	if attempt.Status() != StatusCompleted {
		t.Errorf("статус после сдачи = %q, ожидался completed", attempt.Status())
	}
	if _, ok, _ := store.GetAnswers(ctx, 7, "q1"); ok {
		t.Error("после успешной сдачи сохраненные ответы должны быть удалены")
	}
}

// failingDeleteStore имитирует хранилище, в котором очистка ответов падает.
type failingDeleteStore struct {
	storage.Store
}

func (f failingDeleteStore) DeleteAnswers(ctx context.Context, userID int64, quizID string) error {
	return errors.New("диск недоступен")
}

func TestSubmitSucceedsWhenCleanupFails(t *testing.T) {
	var submits int64
	client := api.NewClientWithHTTP("http://api.test", &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quiz/q1":
			return jsonResponse(http.StatusOK, quizBody), nil
		case r.Method == http.MethodPost && r.URL.Path == "/quiz/q1/attempt":
			atomic.AddInt64(&submits, 1)
			return jsonResponse(http.StatusOK, `{"score":2,"review":[]}`), nil
		}
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})})
	svc := NewAttemptService(client, failingDeleteStore{storage.NewMemoryStore()})
	ctx := context.Background()

	if _, err := svc.Start(ctx, 7, "", "q1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Answer(ctx, 7, "w1", "a"); err != nil {
		t.Fatal(err)
	}

	// Сервер принял ответы: ошибка локальной очистки не должна превращать
	// успешную сдачу в неудачную, иначе повтор упрется в ErrAlreadySubmitted
	// и результат никогда не будет показан.
	result, err := svc.Submit(7)
	if err != nil {
		t.Fatalf("сдача должна считаться успешной: %v", err)
	}
	if result == nil || result.Score != 2 {
		t.Errorf("неверный результат: %+v", result)
	}

	attempt, _ := svc.Get(7)
	if attempt.Status() != StatusCompleted {
		t.Errorf("статус после сдачи = %q, ожидался completed", attempt.Status())
	}
	if got := atomic.LoadInt64(&submits); got != 1 {
		t.Errorf("запросов сдачи %d, ожидался ровно один", got)
	}
}

func TestSubmitFailureReturnsToActive(t *testing.T) {
	var submits int64
	svc, _ := newService(http.StatusInternalServerError, &submits)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 7, "", "q1"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit(7); err == nil {
		t.Fatal("ожидалась ошибка сдачи")
	}

	attempt, _ := svc.Get(7)
	if attempt.Status() != StatusActive {
		t.Errorf("после неудачной сдачи статус = %q, ожидался active для повтора", attempt.Status())
	}

	// Повторная сдача разрешена.
	if _, err := svc.Submit(7); err == nil {
		t.Fatal("ожидалась ошибка сдачи")
	}
	if got := atomic.LoadInt64(&submits); got != 2 {
		t.Errorf("запросов сдачи %d, ожидалось два", got)
	}
}

func TestNavigationClamped(t *testing.T) {
	svc, _ := newService(http.StatusOK, nil)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 7, "", "q1"); err != nil {
		t.Fatal(err)
	}

	if idx, _ := svc.Prev(7); idx != 0 {
		t.Errorf("назад с первого вопроса: индекс %d, ожидался 0", idx)
	}
	for i := 0; i < 10; i++ {
		svc.Next(7)
	}
	if idx, _ := svc.Next(7); idx != 2 {
		t.Errorf("вперед за последним вопросом: индекс %d, ожидался 2", idx)
	}
}

func TestAbortKeepsSavedAnswers(t *testing.T) {
	svc, store := newService(http.StatusOK, nil)
	ctx := context.Background()

	attempt, err := svc.Start(ctx, 7, "", "q1")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Answer(ctx, 7, "w1", "a"); err != nil {
		t.Fatal(err)
	}

	svc.Abort(7)

	if _, ok := svc.Get(7); ok {
		t.Error("после прерывания попытка должна быть снята")
	}
	select {
	case <-attempt.Context().Done():
	default:
		t.Error("контекст попытки должен быть отменен при прерывании")
	}
	if _, ok, _ := store.GetAnswers(ctx, 7, "q1"); !ok {
		t.Error("прерывание не должно удалять сохраненные ответы")
	}
}
