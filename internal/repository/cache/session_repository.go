package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/domain/repository"
	apperrors "github.com/heritage-catalog-service/internal/pkg/errors"
)

// sessionRepository хранит состояние сессий в Redis.
// Состояние пишется одним JSON-значением; фильтр внутри него уже сериализован
// в составную строку, поэтому дополнительного формата не требуется.
type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewSessionRepository(redis *Redis, ttl time.Duration) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		logger: redis.logger,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to load session", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// Повреждённое состояние равнозначно отсутствию сессии
		r.logger.Warn("Corrupted session state, dropping",
			zap.String("session_id", id), zap.Error(err))
		_ = r.client.Del(ctx, sessionKey(id)).Err()
		return nil, apperrors.ErrSessionNotFound
	}
	return &state, nil
}

func (r *sessionRepository) Save(ctx context.Context, state *domain.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(state.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session",
			zap.String("session_id", state.ID), zap.Error(err))
		return fmt.Errorf("session save error: %w", err)
	}

	r.logger.Debug("Session saved",
		zap.String("session_id", state.ID),
		zap.String("phase", string(state.Phase)))
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id), zap.Error(err))
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}
