package telemetry

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	outMu sync.RWMutex
	out   io.Writer = os.Stdout
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
}

// SetOutput redirects log lines to w and returns a func restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	outMu.Lock()
	prev := out
	out = w
	outMu.Unlock()
	return func() {
		outMu.Lock()
		out = prev
		outMu.Unlock()
	}
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	l := logger()
	l.Info().Fields(fields).Msg(msg)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	l := logger()
	l.Warn().Fields(fields).Msg(msg)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	l := logger()
	l.Error().Fields(fields).Msg(msg)
}

func logger() zerolog.Logger {
	outMu.RLock()
	w := out
	outMu.RUnlock()
	return zerolog.New(w).With().Timestamp().Logger()
}
