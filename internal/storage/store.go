package storage

import (
	"context"
	"fmt"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/infra/config"
)

// QuizDraft — черновик квиза, который пользователь заполняет по шагам
// в диалоге создания или редактирования.
type QuizDraft struct {
	EditingQuizID string `json:"editing_quiz_id,omitempty"` // Пусто при создании нового квиза.
	Title         string `json:"title"`
	Description   string `json:"description"`
	TotalMarks    int    `json:"total_marks"`
	TimeLimit     int    `json:"time_limit"`
}

// AuthForm — промежуточные поля диалогов входа и регистрации.
// Пароль не сохраняется: он уходит в API сразу на последнем шаге.
type AuthForm struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ClientState — все клиентское состояние одного пользователя Telegram:
// сессия платформы, текущее состояние диалога и черновики форм.
type ClientState struct {
	Session model.Session `json:"session"`
	UIState string        `json:"ui_state"`
	Auth    *AuthForm     `json:"auth,omitempty"`
	Draft   *QuizDraft    `json:"draft,omitempty"`
}

// Store — единая точка доступа к клиентскому локальному хранилищу.
// Все чтения и записи состояния и карт ответов проходят через этот интерфейс,
// поэтому их легко отследить и подменить в тестах.
type Store interface {
	GetState(ctx context.Context, userID int64) (ClientState, bool, error)
	SetState(ctx context.Context, userID int64, state ClientState) error
	DeleteState(ctx context.Context, userID int64) error

	// Карта ответов незавершенной попытки, ключ — ID квиза.
	// Записывается после каждого изменения, чтобы перезапуск мог восстановить прогресс.
	GetAnswers(ctx context.Context, userID int64, quizID string) (map[string]string, bool, error)
	SetAnswers(ctx context.Context, userID int64, quizID string, answers map[string]string) error
	DeleteAnswers(ctx context.Context, userID int64, quizID string) error
}

// NewStore возвращает реализацию Store в зависимости от типа хранения из конфигурации.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "json":
		return NewJSONStore(cfg.Storage.JSONFile), nil
	case "postgres":
		return NewPostgresStore(ctx, cfg)
	case "redis":
		return NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: неизвестный тип хранилища %q", cfg.Storage.Type)
	}
}

func answersKey(userID int64, quizID string) string {
	return fmt.Sprintf("%d:%s", userID, quizID)
}

// UpdateState читает состояние пользователя, применяет mutate и сохраняет
// результат. Отсутствующее состояние трактуется как пустое.
func UpdateState(ctx context.Context, s Store, userID int64, mutate func(*ClientState)) error {
	state, _, err := s.GetState(ctx, userID)
	if err != nil {
		return fmt.Errorf("storage: не удалось прочитать состояние: %w", err)
	}
	mutate(&state)
	if err := s.SetState(ctx, userID, state); err != nil {
		return fmt.Errorf("storage: не удалось сохранить состояние: %w", err)
	}
	return nil
}
