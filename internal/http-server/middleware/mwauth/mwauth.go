package mwauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/DyutiRaman/psyche-connect-app/internal/auth"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/middleware/mwlogger"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
)

type ctxKey struct{}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenVerifier
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// New rejects requests without a valid admin bearer token. Every failure
// gets the same 401 body.
func New(log *slog.Logger, verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := log.With(
				slog.String("path", r.URL.Path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				entry.Warn("missing bearer token")
				unauthorized(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				entry.Warn("token rejected", sl.Err(err))
				unauthorized(w, r)
				return
			}

			entry.Debug("request authenticated", slog.String("admin", claims.Email))
			mwlogger.AddAttrs(r.Context(), slog.String("admin", claims.Email))

			ctx := context.WithValue(r.Context(), ctxKey{}, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// AdminEmail returns the admin identity stored by the middleware.
func AdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxKey{}).(string)
	return email, ok && email != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error("unauthorized"))
}
