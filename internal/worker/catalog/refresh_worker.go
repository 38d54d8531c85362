package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/config"
	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/domain/repository"
	"github.com/heritage-catalog-service/internal/usecase"
	"github.com/heritage-catalog-service/internal/worker"
)

const fallbackLocale = "EN"

// RefreshWorker периодически перезагружает каталог с whc.unesco.org для всех
// настроенных языков. Английский список скачивается первым и служит источником
// fallback-данных: объект, отсутствующий в списке языка, попадает в каталог
// с английским описанием и флагом no_info.
type RefreshWorker struct {
	*worker.BaseWorker
	source      repository.SiteSourceRepository
	catalogRepo repository.CatalogRepository
	catalogUC   *usecase.CatalogUseCase
	locales     []string
	interval    time.Duration
	runOnce     bool
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(
	source repository.SiteSourceRepository,
	catalogRepo repository.CatalogRepository,
	catalogUC *usecase.CatalogUseCase,
	cfg *config.Config,
	logger *zap.Logger,
) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker:  worker.NewBaseWorker("catalog-refresh", logger),
		source:      source,
		catalogRepo: catalogRepo,
		catalogUC:   catalogUC,
		locales:     cfg.Catalog.Locales,
		interval:    cfg.Worker.RefreshInterval,
		runOnce:     cfg.Worker.RunOnce,
	}
}

// Start запускает воркер
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RefreshWorker",
		zap.Strings("locales", w.locales),
		zap.Duration("interval", w.interval),
		zap.Bool("run_once", w.runOnce))

	if err := w.RefreshAll(ctx); err != nil {
		logger.Error("Initial catalog refresh failed", zap.Error(err))
		if w.runOnce {
			return err
		}
	}
	if w.runOnce {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			if err := w.RefreshAll(ctx); err != nil {
				logger.Error("Catalog refresh failed", zap.Error(err))
			}
		}
	}
}

// RefreshAll обновляет каталог для всех языков за один проход.
// Ошибка одного языка не прерывает обновление остальных.
func (w *RefreshWorker) RefreshAll(ctx context.Context) error {
	logger := w.Logger()
	started := time.Now()

	fallback, err := w.source.FetchSites(ctx, fallbackLocale)
	if err != nil {
		return fmt.Errorf("failed to fetch fallback list: %w", err)
	}
	if len(fallback) == 0 {
		return fmt.Errorf("fallback list is empty, refusing to refresh")
	}

	var firstErr error
	for _, loc := range w.locales {
		if err := w.refreshLocale(ctx, loc, fallback); err != nil {
			logger.Error("Failed to refresh locale",
				zap.String("locale", loc), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	logger.Info("Catalog refresh finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("locales", len(w.locales)))
	return firstErr
}

func (w *RefreshWorker) refreshLocale(ctx context.Context, loc string, fallback []domain.Site) error {
	logger := w.Logger()

	var sites []domain.Site
	if loc == fallbackLocale {
		sites = fallback
	} else {
		fetched, err := w.source.FetchSites(ctx, loc)
		if err != nil {
			return err
		}
		sites = mergeWithFallback(loc, fetched, fallback)
	}

	if len(sites) == 0 {
		return fmt.Errorf("fetched list for %s is empty", loc)
	}

	if err := w.catalogRepo.ReplaceLocale(ctx, loc, sites); err != nil {
		return err
	}
	w.catalogUC.Invalidate(ctx, loc)

	logger.Info("Locale refreshed",
		zap.String("locale", loc),
		zap.Int("sites", len(sites)))
	return nil
}

// mergeWithFallback дополняет список языка объектами, которых в нём нет.
// Порядок задаётся английским списком, чтобы каталоги всех языков совпадали
// по составу. Дополненный объект несёт английское описание и флаг no_info.
func mergeWithFallback(loc string, fetched, fallback []domain.Site) []domain.Site {
	byRef := make(map[string]*domain.Site, len(fetched))
	for i := range fetched {
		byRef[fetched[i].RefID] = &fetched[i]
	}

	merged := make([]domain.Site, 0, len(fallback))
	for i := range fallback {
		if site, ok := byRef[fallback[i].RefID]; ok {
			merged = append(merged, *site)
			continue
		}
		filled := fallback[i]
		filled.Locale = loc
		filled.NoInfo = true
		merged = append(merged, filled)
	}
	return merged
}
