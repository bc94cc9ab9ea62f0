package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"lost-found-search/internal/platform/logger"
)

const TraceHeader = "X-Trace-ID"

type ctxKey string

const (
	loggerKey  ctxKey = "logger"
	traceIDKey ctxKey = "trace_id"
)

// RequestLogger loguea inicio y fin de cada request con un trace id
// (el del header X-Trace-ID o uno nuevo) y deja un logger con ese trace id en el ctx.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}
			w.Header().Set(TraceHeader, traceID)

			reqLog := log.With(map[string]any{"trace_id": traceID})
			httpLog := reqLog.With(map[string]any{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ctx := context.WithValue(r.Context(), loggerKey, reqLog)
			ctx = context.WithValue(ctx, traceIDKey, traceID)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			httpLog.Debug("request started", nil)

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := map[string]any{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(start).Milliseconds(),
			}
			if ww.Status() >= http.StatusInternalServerError {
				httpLog.Error("request finished", fields)
				return
			}
			httpLog.Info("request finished", fields)
		})
	}
}

// LoggerFrom devuelve el logger del request, o fallback si no hay.
func LoggerFrom(ctx context.Context, fallback logger.Logger) logger.Logger {
	if l, ok := ctx.Value(loggerKey).(logger.Logger); ok {
		return l
	}
	return fallback
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}
