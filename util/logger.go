package util

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// EventType classifies application events written to the log.
type EventType string

const (
	EventEndpointCall      EventType = "ENDPOINT_CALL"
	EventRateLimitExceeded EventType = "RATE_LIMIT_EXCEEDED"
	EventRateLimitDegraded EventType = "RATE_LIMIT_DEGRADED"
	EventUploadStored      EventType = "UPLOAD_STORED"
	EventMigrationApplied  EventType = "MIGRATION_APPLIED"
	EventServerError       EventType = "SERVER_ERROR"
)

// Event is a single application event.
type Event struct {
	Type      EventType
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var (
	loggerMu sync.RWMutex
	logger   = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// ConfigureLogger switches to human-readable console output outside production.
func ConfigureLogger(appEnv string) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if appEnv == "development" || appEnv == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
		return
	}
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLoggerForTest redirects log output to w and returns a func restoring the previous logger.
func SetLoggerForTest(w io.Writer) func() {
	loggerMu.Lock()
	prev := logger
	logger = zerolog.New(w).With().Timestamp().Logger()
	loggerMu.Unlock()
	return func() {
		loggerMu.Lock()
		logger = prev
		loggerMu.Unlock()
	}
}

// sanitizeLogValue removes newlines and tabs and truncates long values.
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

func levelFor(t EventType) zerolog.Level {
	switch t {
	case EventServerError:
		return zerolog.ErrorLevel
	case EventRateLimitExceeded, EventRateLimitDegraded:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogEvent writes an event with sanitized string fields.
func LogEvent(event Event) {
	l := Logger()
	evt := l.WithLevel(levelFor(event.Type)).
		Str("event", string(event.Type))
	if event.IP != "" {
		evt = evt.Str("ip", sanitizeLogValue(event.IP))
	}
	if event.UserAgent != "" {
		evt = evt.Str("user_agent", sanitizeLogValue(event.UserAgent))
	}
	for k, v := range event.Details {
		if s, ok := v.(string); ok {
			evt = evt.Str(k, sanitizeLogValue(s))
			continue
		}
		evt = evt.Interface(k, v)
	}
	evt.Msg(sanitizeLogValue(event.Message))
}
