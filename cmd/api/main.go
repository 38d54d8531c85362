package main

// @title Heritage Catalog Service API
// @version 1.0.0
// @description Сервис диалогового поиска по каталогу объектов Всемирного наследия ЮНЕСКО. Поиск ведётся составным фильтром (запятая сужает, плюс расширяет) и по близости к геопозиции пользователя с автоматическим подбором радиуса.
// @description
// @description Основные возможности:
// @description - Диалоговые сессии: каждый ввод возвращает готовый экран с текстом и кнопками
// @description - Текстовый поиск по названию, стране, региону, году и критериям отбора
// @description - Поиск ближайших объектов с ручным управлением радиусом
// @description - Карточки объектов со списком локаций и координатами
// @description - Справочные списки стран и критериев

// @contact.name API Support
// @contact.email support@heritage-catalog-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/heritage-catalog-service/docs/swagger"
	"github.com/heritage-catalog-service/internal/config"
	httpDelivery "github.com/heritage-catalog-service/internal/delivery/http"
	"github.com/heritage-catalog-service/internal/delivery/http/handler"
	"github.com/heritage-catalog-service/internal/locale"
	"github.com/heritage-catalog-service/internal/pkg/logger"
	"github.com/heritage-catalog-service/internal/repository/cache"
	"github.com/heritage-catalog-service/internal/repository/postgres"
	"github.com/heritage-catalog-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Heritage Catalog Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Load locale tables
	tables, err := locale.LoadAll()
	if err != nil {
		log.Fatal("Failed to load locale tables", zap.Error(err))
	}
	log.Info("Locale tables loaded", zap.Strings("locales", locale.Supported()))

	// 4. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 5. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 6. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 7. Initialize repositories
	catalogRepo := postgres.NewSiteRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient, cfg.Session.TTL)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, cacheRepo, cfg.Catalog.CacheTTL, log)
	searchUC := usecase.NewSearchUseCase(log)
	sessionUC := usecase.NewSessionUseCase(
		sessionRepo,
		catalogUC,
		searchUC,
		tables,
		cfg.Catalog.DefaultLocale,
		log,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	sessionHandler := handler.NewSessionHandler(sessionUC, log)
	catalogHandler := handler.NewCatalogHandler(catalogUC, log)

	server := httpDelivery.NewServer(cfg, log, sessionHandler, catalogHandler)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
