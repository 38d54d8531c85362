package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/domain/repository"
	apperrors "github.com/heritage-catalog-service/internal/pkg/errors"
	"github.com/heritage-catalog-service/internal/usecase/dto"
)

// CatalogUseCase отдаёт снимки каталога по языку.
// Три уровня: память процесса, Redis, PostgreSQL. Снимок неизменяем,
// поисковые движки работают с ним без копирования.
type CatalogUseCase struct {
	catalogRepo repository.CatalogRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration

	mu        sync.RWMutex
	snapshots map[string][]domain.Site
}

// NewCatalogUseCase создает новый use case для каталога
func NewCatalogUseCase(
	catalogRepo repository.CatalogRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
		snapshots:   make(map[string][]domain.Site),
	}
}

func catalogKey(locale string) string {
	return "catalog:" + locale
}

// Snapshot возвращает каталог для языка. Пустой каталог - ошибка
// ErrCatalogUnavailable: искать не по чему.
func (uc *CatalogUseCase) Snapshot(ctx context.Context, locale string) ([]domain.Site, error) {
	uc.mu.RLock()
	sites, ok := uc.snapshots[locale]
	uc.mu.RUnlock()
	if ok {
		return sites, nil
	}

	sites, err := uc.loadSnapshot(ctx, locale)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		uc.logger.Warn("Catalog is empty", zap.String("locale", locale))
		return nil, apperrors.ErrCatalogUnavailable
	}

	uc.mu.Lock()
	uc.snapshots[locale] = sites
	uc.mu.Unlock()

	return sites, nil
}

func (uc *CatalogUseCase) loadSnapshot(ctx context.Context, locale string) ([]domain.Site, error) {
	// Кеш быстрее базы, но его отсутствие или поломка не фатальны
	if data, err := uc.cacheRepo.Get(ctx, catalogKey(locale)); err == nil && data != nil {
		var sites []domain.Site
		if err := json.Unmarshal(data, &sites); err == nil {
			return sites, nil
		}
		uc.logger.Warn("Corrupted catalog cache, falling back to database",
			zap.String("locale", locale))
	}

	sites, err := uc.catalogRepo.LoadByLocale(ctx, locale)
	if err != nil {
		uc.logger.Error("Failed to load catalog",
			zap.String("locale", locale), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	if len(sites) > 0 {
		if data, err := json.Marshal(sites); err == nil {
			if err := uc.cacheRepo.Set(ctx, catalogKey(locale), data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache catalog", zap.String("locale", locale), zap.Error(err))
			}
		}
	}

	uc.logger.Info("Catalog loaded from database",
		zap.String("locale", locale), zap.Int("sites", len(sites)))
	return sites, nil
}

// Invalidate сбрасывает снимок языка после обновления каталога воркером
func (uc *CatalogUseCase) Invalidate(ctx context.Context, locale string) {
	uc.mu.Lock()
	delete(uc.snapshots, locale)
	uc.mu.Unlock()

	if err := uc.cacheRepo.Delete(ctx, catalogKey(locale)); err != nil {
		uc.logger.Warn("Failed to invalidate catalog cache",
			zap.String("locale", locale), zap.Error(err))
	}
}

// CountryStats возвращает страны каталога с количеством объектов,
// по убыванию количества, при равенстве - по алфавиту.
// Трансграничный объект учитывается в каждой своей стране.
func (uc *CatalogUseCase) CountryStats(ctx context.Context, locale string) ([]dto.CountryCount, error) {
	sites, err := uc.Snapshot(ctx, locale)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := range sites {
		for _, country := range sites[i].Country {
			counts[country]++
		}
	}

	stats := make([]dto.CountryCount, 0, len(counts))
	for country, n := range counts {
		stats = append(stats, dto.CountryCount{Country: country, Sites: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Sites != stats[j].Sites {
			return stats[i].Sites > stats[j].Sites
		}
		return stats[i].Country < stats[j].Country
	})
	return stats, nil
}
