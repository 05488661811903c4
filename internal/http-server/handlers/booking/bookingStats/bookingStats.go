package bookingStats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

type StatsResponse struct {
	response.Response
	Stats models.BookingStats `json:"stats"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatsGetter
type StatsGetter interface {
	GetBookingStats(ctx context.Context) (models.BookingStats, error)
}

func New(log *slog.Logger, statsGetter StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.bookingStats.New"

		log := log.With(slog.String("op", op))

		stats, err := statsGetter.GetBookingStats(r.Context())
		if err != nil {
			log.Error("failed to get booking stats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get booking stats"))
			return
		}

		render.JSON(w, r, StatsResponse{
			Response: response.OK(),
			Stats:    stats,
		})
	}
}
