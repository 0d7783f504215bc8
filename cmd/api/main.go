package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-summarizer/docs"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	meetingUsecase "github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

// @title           Meeting Summarizer API
// @version         1.0
// @description     Upload meeting audio, get back a transcript, a summary with key decisions and action items.

// @contact.name   API Support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	// Initialize Database
	appLogger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Production deployments run cmd/migrate instead.
	switch {
	case cfg.ShouldAutoMigrate():
		if _, err := database.Migrate(db, cfg.Database.MigrationsDir, appLogger); err != nil {
			appLogger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	case cfg.Database.AutoMigrate:
		appLogger.Warn("⚠️ DB_AUTO_MIGRATE is ignored in production; run cmd/migrate to manage the schema")
	default:
		appLogger.Info("🔄 Skipping migrations; run cmd/migrate to manage the schema")
	}

	// Initialize audio storage
	audioStore, err := newAudioStore(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	appLogger.Info("💾 Audio storage ready", zap.String("backend", audioStore.Backend()))

	// Initialize read cache
	readCache, err := newReadCache(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer readCache.Close()

	// Initialize AI clients
	appLogger.Info("🤖 Initializing AI components...",
		zap.String("transcription_provider", cfg.AI.TranscriptionProvider),
		zap.String("transcription_model", cfg.AI.TranscriptionModel),
		zap.String("summary_provider", cfg.AI.SummaryProvider),
		zap.String("summary_model", cfg.AI.SummaryModel),
	)
	transcriber, err := pkgai.NewSpeechToText(&cfg.AI)
	if err != nil {
		appLogger.Fatal("Failed to initialize transcription client", zap.Error(err))
	}
	summarizer, err := pkgai.NewChat(ctx, &cfg.AI)
	if err != nil {
		appLogger.Fatal("Failed to initialize summarization client", zap.Error(err))
	}

	meetingRepo := repository.NewMeetingRepository(db)
	meetingService := meetingUsecase.NewService(
		meetingRepo,
		audioStore,
		readCache,
		transcriber,
		summarizer,
		meetingUsecase.Options{
			TranscriptionModel: cfg.AI.TranscriptionModel,
			SummaryModel:       cfg.AI.SummaryModel,
			SummaryMaxTokens:   cfg.AI.SummaryMaxTokens,
			SummaryTemperature: cfg.AI.SummaryTemperature,
			CacheTTL:           cfg.Redis.TTL,
		},
		appLogger,
	)
	meetingHandler := handler.NewMeetingHandler(meetingService, appLogger)

	e := newEcho(cfg)
	handler.NewRouter(cfg, meetingHandler).Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		appLogger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	appLogger.Info("✅ Server stopped gracefully")
}

func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	return e
}

func newAudioStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Type == config.StorageTypeMinIO {
		return storage.NewMinIOStore(ctx, &cfg.Storage)
	}
	return storage.NewLocalStore(cfg.Storage.Dir)
}

func newReadCache(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.Redis.Enabled {
		return cache.NewRedisClient(ctx, cfg)
	}
	return cache.NewMemoryStore(), nil
}
