package deleteCaseSheet

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CaseSheetClearer
type CaseSheetClearer interface {
	ClearCaseSheet(ctx context.Context, id int) (string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FileRemover
type FileRemover interface {
	Delete(ctx context.Context, publicURL string) error
}

func New(log *slog.Logger, clearer CaseSheetClearer, files FileRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.deleteCaseSheet.New"

		log := log.With(slog.String("op", op))

		bookingIDStr := chi.URLParam(r, "id")
		if bookingIDStr == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		bookingID, err := strconv.Atoi(bookingIDStr)
		if err != nil || bookingID <= 0 {
			log.Error("invalid booking id format", slog.String("id", bookingIDStr))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id format"))
			return
		}

		log = log.With(slog.Int("booking_id", bookingID))

		url, err := clearer.ClearCaseSheet(r.Context(), bookingID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				log.Warn("booking not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, storage.ErrCaseSheetNotFound):
				log.Warn("booking has no case sheet")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("case sheet not found"))
			default:
				log.Error("failed to clear case sheet", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to delete case sheet"))
			}
			return
		}

		// The row no longer references the file, so a failed removal only leaks storage.
		if err = files.Delete(r.Context(), url); err != nil {
			log.Warn("failed to remove case sheet file", slog.String("url", url), sl.Err(err))
		}

		log.Info("case sheet deleted", slog.String("url", url))

		render.JSON(w, r, response.OK())
	}
}
