package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/crimson-sun/triage/internal/redact"
)

// Init creates and sets the package-level default slog logger.
// When outputIsStdout is true, uses JSONHandler on stderr (avoids mixing with
// NDJSON report output). Otherwise uses TextHandler on stderr for human
// readability. With redactPII set, string attribute values are scrubbed
// before they reach the handler, since log lines often quote raw report text.
func Init(outputIsStdout bool, level slog.Level, redactPII bool) {
	opts := &slog.HandlerOptions{Level: level}
	if redactPII {
		opts.ReplaceAttr = redactAttr
	}
	var handler slog.Handler
	if outputIsStdout {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		a.Value = slog.StringValue(redact.Apply(a.Value.String()))
	}
	return a
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
