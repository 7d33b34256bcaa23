package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "cardnews-backend"

var zlog = zerolog.New(os.Stdout).With().Timestamp().Str("service", serviceName).Logger()

// InitStructured initializes the structured zerolog logger
func InitStructured(env string) {
	var w io.Writer

	if IsDevelopment(env) {
		// Pretty console output for development
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		// JSON output for production (machine-readable)
		w = os.Stdout
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	zlog = zerolog.New(w).With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	zerolog.TimeFieldFormat = time.RFC3339
}

// SetOutput redirects the structured logger (tests)
func SetOutput(w io.Writer) {
	zlog = zlog.Output(w)
}

// GetLogger returns the global zerolog logger
func GetLogger() *zerolog.Logger {
	return &zlog
}

// WithRequestID returns a logger with request_id field
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}

// IsDevelopment reports whether env names a local/dev environment
func IsDevelopment(env string) bool {
	switch env {
	case "", "local", "dev", "development":
		return true
	}
	return false
}
