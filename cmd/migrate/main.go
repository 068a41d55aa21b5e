package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"summary-backend/internal/shared/config"
	"summary-backend/internal/shared/storage/db"
	"summary-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	version, err := db.Version(sqlDB)
	if err != nil {
		telemetry.Warn("migrate.version_unknown", map[string]any{"error": err.Error()})
		return
	}
	telemetry.Info("migrate.done", map[string]any{"version": version})
}
