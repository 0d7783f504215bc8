package main

import (
	"context"
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/logger"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply (0 = all)")
	flag.Parse()

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

	db, err := database.NewPostgresDB(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	var dir migrate.MigrationDirection
	switch *direction {
	case "up":
		dir = migrate.Up
	case "down":
		dir = migrate.Down
	default:
		appLogger.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Fatal("Failed to get database connection", zap.Error(err))
	}

	migrations := &migrate.FileMigrationSource{
		Dir: cfg.Database.MigrationsDir,
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", migrations, dir, *steps)
	if err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	appLogger.Info("✅ Migrations applied",
		zap.String("direction", *direction),
		zap.Int("count", n),
	)
}
