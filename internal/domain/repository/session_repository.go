package repository

import (
	"context"

	"github.com/heritage-catalog-service/internal/domain"
)

// SessionRepository - хранилище состояний сессий.
// Состояние сериализуется целиком; фильтр внутри него - одна составная строка.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.SessionState, error)
	Save(ctx context.Context, state *domain.SessionState) error
	Delete(ctx context.Context, id string) error
}
