package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/huddle-backend/internal/config"
)

// maskedKeys hold caller numbers; only their last digits are logged.
var maskedKeys = map[string]bool{"phone": true, "identity": true}

// NewLogger creates the process logger on stderr and installs it as the
// slog default. Format "json" is for production; anything else selects text
// output with source locations.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   !strings.EqualFold(cfg.Format, "json"),
		ReplaceAttr: maskPhone,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", "huddle"))
}

func maskPhone(_ []string, a slog.Attr) slog.Attr {
	if !maskedKeys[a.Key] || a.Value.Kind() != slog.KindString {
		return a
	}
	return slog.String(a.Key, MaskPhone(a.Value.String()))
}

// MaskPhone keeps the last four characters of a caller number.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return strings.Repeat("*", len(phone))
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
