package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

func testStateRoundtrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.GetState(ctx, 1); err != nil || ok {
		t.Fatalf("пустое хранилище: ok=%t err=%v", ok, err)
	}

	state := ClientState{
		Session: model.Session{
			Token: "tok",
			User:  &model.UserSummary{ID: "u1", Username: "ivan"},
		},
		UIState: model.UIStateCreateTitle,
		Draft:   &QuizDraft{Title: "Квиз", TotalMarks: 5},
	}
	if err := store.SetState(ctx, 1, state); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.GetState(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("состояние не прочитано: ok=%t err=%v", ok, err)
	}
	if got.Session.Token != "tok" || got.UIState != model.UIStateCreateTitle {
		t.Errorf("состояние искажено: %+v", got)
	}
	if got.Draft == nil || got.Draft.Title != "Квиз" {
		t.Errorf("черновик искажен: %+v", got.Draft)
	}

	if err := store.DeleteState(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.GetState(ctx, 1); ok {
		t.Error("состояние должно быть удалено")
	}
}

func testAnswersRoundtrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.SetAnswers(ctx, 1, "q1", map[string]string{"w1": "a"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetAnswers(ctx, 1, "q2", map[string]string{"w1": "b"}); err != nil {
		t.Fatal(err)
	}

	// Ответы ключуются парой (пользователь, квиз) и не пересекаются.
	got, ok, err := store.GetAnswers(ctx, 1, "q1")
	if err != nil || !ok || got["w1"] != "a" {
		t.Errorf("ответы q1: %v, ok=%t, err=%v", got, ok, err)
	}
	got, _, _ = store.GetAnswers(ctx, 1, "q2")
	if got["w1"] != "b" {
		t.Errorf("ответы q2 перезаписаны: %v", got)
	}
	if _, ok, _ := store.GetAnswers(ctx, 2, "q1"); ok {
		t.Error("ответы другого пользователя не должны находиться")
	}

	if err := store.DeleteAnswers(ctx, 1, "q1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.GetAnswers(ctx, 1, "q1"); ok {
		t.Error("ответы должны быть удалены")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	testStateRoundtrip(t, store)
	testAnswersRoundtrip(t, store)
}

func TestJSONStore(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "states.json")
	store := NewJSONStore(filename)
	testStateRoundtrip(t, store)
	testAnswersRoundtrip(t, store)
}

func TestJSONStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	filename := filepath.Join(t.TempDir(), "states.json")

	first := NewJSONStore(filename)
	if err := first.SetState(ctx, 9, ClientState{Session: model.Session{Token: "tok"}}); err != nil {
		t.Fatal(err)
	}
	if err := first.SetAnswers(ctx, 9, "q1", map[string]string{"w1": "a"}); err != nil {
		t.Fatal(err)
	}

	// Новый экземпляр поверх того же файла видит данные предыдущего.
	second := NewJSONStore(filename)
	state, ok, err := second.GetState(ctx, 9)
	if err != nil || !ok || state.Session.Token != "tok" {
		t.Errorf("состояние не пережило перезапуск: %+v, ok=%t, err=%v", state, ok, err)
	}
	answers, ok, _ := second.GetAnswers(ctx, 9, "q1")
	if !ok || answers["w1"] != "a" {
		t.Errorf("ответы не пережили перезапуск: %v", answers)
	}
}

func TestMemoryStoreCopiesAnswers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := map[string]string{"w1": "a"}
	if err := store.SetAnswers(ctx, 1, "q1", original); err != nil {
		t.Fatal(err)
	}
	original["w1"] = "изменено"

	got, _, _ := store.GetAnswers(ctx, 1, "q1")
	if got["w1"] != "a" {
		t.Error("хранилище должно копировать карту ответов, а не держать ссылку")
	}
}
