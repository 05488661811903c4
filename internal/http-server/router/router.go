// Package router assembles the HTTP API.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/DyutiRaman/psyche-connect-app/internal/attachments"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/admin/login"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/bookingStats"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/createBooking"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/deleteCaseSheet"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/exportBookings"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/getAllBookings"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/getBooking"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/updateStatus"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/uploadCaseSheet"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/email/sendEmail"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/middleware/mwauth"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/middleware/mwlogger"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/metrics"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/telemetry"
)

// Storage is everything the API needs from the booking store.
type Storage interface {
	createBooking.BookingCreator
	getAllBookings.BookingsGetter
	getBooking.BookingGetter
	bookingStats.StatsGetter
	updateStatus.StatusUpdater
	uploadCaseSheet.CaseSheetAttacher
	deleteCaseSheet.CaseSheetClearer
	Ping(ctx context.Context) error
}

type Authenticator interface {
	login.Authenticator
	mwauth.TokenVerifier
}

type Options struct {
	Log      *slog.Logger
	Storage  Storage
	Files    attachments.Store
	Auth     Authenticator
	Notifier sendEmail.Notifier
	Metrics  *metrics.Metrics

	// UploadsDir is served under /uploads/ when set (disk attachments).
	UploadsDir     string
	StaticDir      string
	MaxUploadSize  int64
	AllowedOrigins []string
	RateLimit      int
	Tracing        bool

	// TrustProxyHeaders lets X-Forwarded-For, X-Real-IP and True-Client-IP
	// replace the peer address used for logging and rate limiting.
	TrustProxyHeaders bool
}

func New(opts Options) http.Handler {
	log := opts.Log

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	if opts.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	if opts.Tracing {
		router.Use(telemetry.Middleware())
	}
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", readyz(log, opts.Storage))

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	rateLimit := opts.RateLimit
	if rateLimit <= 0 {
		rateLimit = 30
	}

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(rateLimit, time.Minute))

			r.Post("/bookings", createBooking.New(log, opts.Storage))
			r.Post("/admin/login", login.New(log, opts.Auth))
		})

		r.Group(func(r chi.Router) {
			r.Use(mwauth.New(log, opts.Auth))

			r.Get("/bookings", getAllBookings.New(log, opts.Storage))
			r.Get("/bookings/stats", bookingStats.New(log, opts.Storage))
			r.Get("/bookings/export", exportBookings.New(log, opts.Storage))
			r.Get("/bookings/{id}", getBooking.New(log, opts.Storage))
			r.Put("/bookings/{id}/status", updateStatus.New(log, opts.Storage))
			r.Post("/bookings/{id}/casesheet", uploadCaseSheet.New(log, opts.Storage, opts.Files, opts.MaxUploadSize))
			r.Delete("/bookings/{id}/casesheet", deleteCaseSheet.New(log, opts.Storage, opts.Files))
			r.Post("/email", sendEmail.New(log, opts.Notifier))
		})
	})

	if opts.UploadsDir != "" {
		fs := http.FileServer(http.Dir(opts.UploadsDir))
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))
	}

	if opts.StaticDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return router
}

func readyz(log *slog.Logger, storage Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := storage.Ping(ctx); err != nil {
			log.Error("readiness check failed", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("database unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
