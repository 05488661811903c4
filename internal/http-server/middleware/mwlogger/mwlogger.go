package mwlogger

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type attrsKey struct{}

type requestAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

func New(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/logger"),
		)

		log.Info("logger middleware enabled")

		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := log.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			extra := &requestAttrs{}
			r = r.WithContext(context.WithValue(r.Context(), attrsKey{}, extra))

			t1 := time.Now()
			defer func() {
				args := []any{
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("duration", time.Since(t1).String()),
				}

				extra.mu.Lock()
				for _, a := range extra.attrs {
					args = append(args, a)
				}
				extra.mu.Unlock()

				entry.Info("request completed", args...)
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

// AddAttrs attaches attrs to the "request completed" line of the current
// request. It does nothing outside the logger middleware.
func AddAttrs(ctx context.Context, attrs ...slog.Attr) {
	extra, ok := ctx.Value(attrsKey{}).(*requestAttrs)
	if !ok {
		return
	}

	extra.mu.Lock()
	extra.attrs = append(extra.attrs, attrs...)
	extra.mu.Unlock()
}
