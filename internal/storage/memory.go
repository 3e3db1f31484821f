package storage

import (
	"context"
	"sync"
)

// MemoryStore — in-memory реализация Store. Используется по умолчанию и в тестах.
type MemoryStore struct {
	mu      sync.RWMutex
	states  map[int64]ClientState
	answers map[string]map[string]string
}

// NewMemoryStore создает новый MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:  make(map[int64]ClientState),
		answers: make(map[string]map[string]string),
	}
}

func (m *MemoryStore) GetState(_ context.Context, userID int64) (ClientState, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[userID]
	return state, ok, nil
}

func (m *MemoryStore) SetState(_ context.Context, userID int64, state ClientState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = state
	return nil
}

func (m *MemoryStore) DeleteState(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}

func (m *MemoryStore) GetAnswers(_ context.Context, userID int64, quizID string) (map[string]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.answers[answersKey(userID, quizID)]
	if !ok {
		return nil, false, nil
	}
	// Возвращаем копию, чтобы вызывающий не менял хранимую карту напрямую.
	answers := make(map[string]string, len(stored))
	for k, v := range stored {
		answers[k] = v
	}
	return answers, true, nil
}

func (m *MemoryStore) SetAnswers(_ context.Context, userID int64, quizID string, answers map[string]string) error {
	copied := make(map[string]string, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[answersKey(userID, quizID)] = copied
	return nil
}

func (m *MemoryStore) DeleteAnswers(_ context.Context, userID int64, quizID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.answers, answersKey(userID, quizID))
	return nil
}
