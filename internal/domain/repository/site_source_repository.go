package repository

import (
	"context"

	"github.com/heritage-catalog-service/internal/domain"
)

// SiteSourceRepository - внешний источник данных каталога (whc.unesco.org).
// Используется только воркером обновления.
type SiteSourceRepository interface {
	// FetchSites скачивает и разбирает список объектов для языка
	FetchSites(ctx context.Context, locale string) ([]domain.Site, error)
}
