package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kritika122297/QuizMaster/internal/infra/config"
)

// PostgresStore — реализация Store поверх PostgreSQL (pgx).
// Состояние и карты ответов хранятся как JSONB, ключ — Telegram-ID пользователя.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore устанавливает подключение к базе данных и создает таблицы при их отсутствии.
func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	const op = "storage.NewPostgresStore"

	pg := cfg.Storage.Postgres
	connConfig, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		pg.User, pg.Password, pg.Host, pg.Port, pg.Name))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Println("Database connected successfully!")
	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS client_states (
            telegram_id BIGINT PRIMARY KEY,
            state JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );
        CREATE TABLE IF NOT EXISTS attempt_answers (
            telegram_id BIGINT NOT NULL,
            quiz_id TEXT NOT NULL,
            answers JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            PRIMARY KEY (telegram_id, quiz_id)
        );
    `)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetState(ctx context.Context, userID int64) (ClientState, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, "SELECT state FROM client_states WHERE telegram_id=$1", userID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ClientState{}, false, nil
		}
		return ClientState{}, false, fmt.Errorf("failed to get client state: %w", err)
	}
	var state ClientState
	if err := json.Unmarshal(raw, &state); err != nil {
		return ClientState{}, false, fmt.Errorf("failed to decode client state: %w", err)
	}
	return state, true, nil
}

func (s *PostgresStore) SetState(ctx context.Context, userID int64, state ClientState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode client state: %w", err)
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO client_states (telegram_id, state, updated_at) VALUES ($1, $2, now())
        ON CONFLICT (telegram_id) DO UPDATE SET state=EXCLUDED.state, updated_at=now()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("failed to set client state: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteState(ctx context.Context, userID int64) error {
	_, err := s.db.Exec(ctx, "DELETE FROM client_states WHERE telegram_id=$1", userID)
	if err != nil {
		return fmt.Errorf("failed to delete client state: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAnswers(ctx context.Context, userID int64, quizID string) (map[string]string, bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		"SELECT answers FROM attempt_answers WHERE telegram_id=$1 AND quiz_id=$2", userID, quizID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get answers: %w", err)
	}
	var answers map[string]string
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, false, fmt.Errorf("failed to decode answers: %w", err)
	}
	return answers, true, nil
}

func (s *PostgresStore) SetAnswers(ctx context.Context, userID int64, quizID string, answers map[string]string) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO attempt_answers (telegram_id, quiz_id, answers, updated_at) VALUES ($1, $2, $3, now())
        ON CONFLICT (telegram_id, quiz_id) DO UPDATE SET answers=EXCLUDED.answers, updated_at=now()`,
		userID, quizID, raw)
	if err != nil {
		return fmt.Errorf("failed to set answers: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteAnswers(ctx context.Context, userID int64, quizID string) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM attempt_answers WHERE telegram_id=$1 AND quiz_id=$2", userID, quizID)
	if err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	return nil
}

// Close освобождает пул подключений.
func (s *PostgresStore) Close() {
	s.db.Close()
}
