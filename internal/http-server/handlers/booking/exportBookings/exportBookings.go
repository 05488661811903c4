package exportBookings

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/DyutiRaman/psyche-connect-app/internal/export"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsGetter
type BookingsGetter interface {
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
}

func New(log *slog.Logger, bookingsGetter BookingsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.exportBookings.New"

		log := log.With(slog.String("op", op))

		bookings, err := bookingsGetter.GetAllBookings(r.Context())
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to export bookings"))
			return
		}

		var buf bytes.Buffer
		if err = export.WriteBookings(&buf, bookings); err != nil {
			log.Error("failed to build workbook", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to export bookings"))
			return
		}

		filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().UTC().Format("2006-01-02"))

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)

		if _, err = buf.WriteTo(w); err != nil {
			log.Error("failed to write workbook", sl.Err(err))
			return
		}

		log.Info("bookings exported", slog.Int("count", len(bookings)))
	}
}
