package main

import (
	"context"
	"flag"
	"log"
	"time"

	"mcq-platform/internal/config"
	"mcq-platform/internal/database"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", database.DirectionUp, "migration direction: up or down")
	timeout := flag.Duration("timeout", 2*time.Minute, "maximum time allowed for the migration run")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg.DB, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver, *direction); err != nil {
		l.Fatal("Failed to run migrations", zap.String("direction", *direction), zap.Error(err))
	}
	l.Info("Migrations applied", zap.String("driver", cfg.DB.Driver), zap.String("direction", *direction))
}
