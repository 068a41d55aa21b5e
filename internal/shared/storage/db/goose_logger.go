package db

import (
	"fmt"
	"os"
	"strings"

	"summary-backend/internal/shared/telemetry"
)

// gooseLogger routes goose output through telemetry.
type gooseLogger struct{}

func (gooseLogger) Fatal(v ...interface{}) {
	telemetry.Error("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprint(v...))})
	os.Exit(1)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	telemetry.Error("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
	os.Exit(1)
}

func (gooseLogger) Print(v ...interface{}) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprint(v...))})
}

func (gooseLogger) Println(v ...interface{}) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintln(v...))})
}

func (gooseLogger) Printf(format string, v ...interface{}) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}
