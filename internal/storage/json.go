package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// jsonFile — формат файла JSONStore: состояния пользователей и карты ответов.
type jsonFile struct {
	States  map[int64]ClientState        `json:"states"`
	Answers map[string]map[string]string `json:"answers"`
}

// JSONStore — реализация Store, сохраняющая данные в JSON-файл.
// Подходит для одного экземпляра бота без внешних зависимостей:
// состояние переживает перезапуск процесса.
type JSONStore struct {
	filename string
	mu       sync.Mutex
}

// NewJSONStore создает новый JSONStore с указанным файлом.
func NewJSONStore(filename string) *JSONStore {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		_ = os.MkdirAll(filepath.Dir(filename), 0755)
		initial := jsonFile{
			States:  make(map[int64]ClientState),
			Answers: make(map[string]map[string]string),
		}
		data, _ := json.Marshal(initial)
		_ = os.WriteFile(filename, data, 0644)
	}
	return &JSONStore{filename: filename}
}

func (j *JSONStore) load() (jsonFile, error) {
	var f jsonFile
	data, err := os.ReadFile(j.filename)
	if err != nil {
		return f, fmt.Errorf("storage: не удалось прочитать файл %s: %w", j.filename, err)
	}
	if len(data) == 0 {
		f.States = make(map[int64]ClientState)
		f.Answers = make(map[string]map[string]string)
		return f, nil
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("storage: не удалось разобрать JSON: %w", err)
	}
	if f.States == nil {
		f.States = make(map[int64]ClientState)
	}
	if f.Answers == nil {
		f.Answers = make(map[string]map[string]string)
	}
	return f, nil
}

func (j *JSONStore) save(f jsonFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: не удалось сериализовать данные: %w", err)
	}
	if err := os.WriteFile(j.filename, data, 0644); err != nil {
		return fmt.Errorf("storage: не удалось записать файл %s: %w", j.filename, err)
	}
	return nil
}

func (j *JSONStore) GetState(_ context.Context, userID int64) (ClientState, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.load()
	if err != nil {
		return ClientState{}, false, err
	}
	state, ok := f.States[userID]
	return state, ok, nil
}

func (j *JSONStore) SetState(_ context.Context, userID int64, state ClientState) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.load()
	if err != nil {
		return err
	}
	f.States[userID] = state
	return j.save(f)
}

func (j *JSONStore) DeleteState(_ context.Context, userID int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.load()
	if err != nil {
		return err
	}
	delete(f.States, userID)
	return j.save(f)
}

func (j *JSONStore) GetAnswers(_ context.Context, userID int64, quizID string) (map[string]string, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.load()
	if err != nil {
		return nil, false, err
	}
	answers, ok := f.Answers[answersKey(userID, quizID)]
	return answers, ok, nil
}

func (j *JSONStore) SetAnswers(_ context.Context, userID int64, quizID string, answers map[string]string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.load()
	if err != nil {
		return err
	}
	f.Answers[answersKey(userID, quizID)] = answers
	return j.save(f)
}

func (j *JSONStore) DeleteAnswers(_ context.Context, userID int64, quizID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.load()
	if err != nil {
		return err
	}
	delete(f.Answers, answersKey(userID, quizID))
	return j.save(f)
}
