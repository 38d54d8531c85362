package repository

import (
	"context"

	"github.com/heritage-catalog-service/internal/domain"
)

// CatalogRepository - доступ к каталогу объектов в PostgreSQL
type CatalogRepository interface {
	// LoadByLocale возвращает все объекты каталога для указанного языка
	LoadByLocale(ctx context.Context, locale string) ([]domain.Site, error)

	// ReplaceLocale атомарно заменяет каталог для языка новым набором объектов.
	// Используется воркером обновления.
	ReplaceLocale(ctx context.Context, locale string, sites []domain.Site) error

	// CountByLocale возвращает размер каталога для языка
	CountByLocale(ctx context.Context, locale string) (int, error)
}
