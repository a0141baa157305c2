package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"curtain_store/internal/config"
	"curtain_store/internal/database"
	"curtain_store/internal/logger"
	"curtain_store/internal/migrations"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables before migrating")
	flag.Parse()

	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, true)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.LogLevel, zlog)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = migrations.RunMigrations(context.Background(), db, migrations.Options{
		Reset:         *reset,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}, zlog)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}
