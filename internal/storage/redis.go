package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Kritika122297/QuizMaster/internal/infra/config"
)

// RedisStore — реализация Store поверх Redis.
// Удобна, когда несколько экземпляров бота делят одно состояние.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore подключается к Redis и проверяет соединение.
func NewRedisStore(ctx context.Context, cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.Redis.Addr,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage.NewRedisStore: failed to ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("quizmaster:state:%d", userID)
}

func redisAnswersKey(userID int64, quizID string) string {
	return fmt.Sprintf("quizmaster:answers:%d:%s", userID, quizID)
}

func (s *RedisStore) GetState(ctx context.Context, userID int64) (ClientState, bool, error) {
	data, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ClientState{}, false, nil
		}
		return ClientState{}, false, fmt.Errorf("failed to get client state: %w", err)
	}
	var state ClientState
	if err := json.Unmarshal(data, &state); err != nil {
		return ClientState{}, false, fmt.Errorf("failed to decode client state: %w", err)
	}
	return state, true, nil
}

func (s *RedisStore) SetState(ctx context.Context, userID int64, state ClientState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode client state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set client state: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteState(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete client state: %w", err)
	}
	return nil
}

func (s *RedisStore) GetAnswers(ctx context.Context, userID int64, quizID string) (map[string]string, bool, error) {
	data, err := s.client.Get(ctx, redisAnswersKey(userID, quizID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get answers: %w", err)
	}
	var answers map[string]string
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, false, fmt.Errorf("failed to decode answers: %w", err)
	}
	return answers, true, nil
}

func (s *RedisStore) SetAnswers(ctx context.Context, userID int64, quizID string, answers map[string]string) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	if err := s.client.Set(ctx, redisAnswersKey(userID, quizID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set answers: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteAnswers(ctx context.Context, userID int64, quizID string) error {
	if err := s.client.Del(ctx, redisAnswersKey(userID, quizID)).Err(); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	return nil
}
