package logutil

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	key byte
)

var (
	loggerKey = key(1)
)

// New builds the root logger. format is "json" or "console".
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetOrDefault(ctx context.Context) zerolog.Logger {
	v := ctx.Value(loggerKey)
	if v == nil {
		return log.Logger
	}
	return v.(zerolog.Logger)
}

// Middleware attaches a request scoped logger to the context and writes one
// line per request once the handler returns. It expects chi's RequestID
// middleware to run first.
func Middleware(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := base.With().
				Str("request.id", middleware.GetReqID(r.Context())).
				Str("http.method", r.Method).
				Str("http.path", r.URL.Path).
				Logger()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(WithLogger(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := reqLog.Info()
			if status >= http.StatusInternalServerError {
				ev = reqLog.Warn()
			}
			ev.Int("http.status", status).
				Int("http.bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}
