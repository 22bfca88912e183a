package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/huddle-backend/pkg/ctxutil"
)

// accessEntry collects request facts learned by inner middleware.
type accessEntry struct {
	userID uuid.UUID
}

type accessEntryKey struct{}

func entryFromCtx(ctx context.Context) *accessEntry {
	e, _ := ctx.Value(accessEntryKey{}).(*accessEntry)
	return e
}

// Logger writes one access line per request. Health checks log at debug,
// client errors at warn and server errors at error. The user resolved by
// Auth further down the chain is included.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := &accessEntry{}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), accessEntryKey{}, entry)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if entry.userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", entry.userID.String()))
			}
			logger.LogAttrs(r.Context(), accessLevel(r.URL.Path, sw.status), "http.request", attrs...)
		})
	}
}

func accessLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case path == "/live" || path == "/ready":
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// statusWriter records the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
