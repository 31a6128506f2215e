// Command seed clears and reseeds the tradition collections from the
// curated in-source dataset. It is a one-shot utility: run it once after
// deployment, or again to reset the knowledge base.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spiritually/spiritually/internal/repository/sqlite"
	"github.com/spiritually/spiritually/internal/seed"
)

func main() {
	_ = godotenv.Load()

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "spiritually.db"
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(ctx, db); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("knowledge base seeded", "database", dbPath)
}
