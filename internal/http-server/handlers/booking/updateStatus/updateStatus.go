package updateStatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/middleware/mwauth"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/request"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type StatusResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusUpdater
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int, status models.Status) (*models.Booking, error)
}

func New(log *slog.Logger, updater StatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.updateStatus.New"

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

		var req StatusRequest

		if err = request.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		booking, err := updater.UpdateStatus(r.Context(), bookingID, models.Status(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				log.Warn("booking not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, models.ErrInvalidTransition):
				log.Warn("status transition rejected", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("status transition not allowed"))
			default:
				log.Error("failed to update booking status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update booking status"))
			}
			return
		}

		admin, _ := mwauth.AdminEmail(r.Context())
		log.Info("booking status updated",
			slog.String("status", string(booking.Status)),
			slog.String("admin", admin),
		)

		responseOK(w, r, booking)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booking *models.Booking) {
	render.JSON(w, r, StatusResponse{
		Response: response.OK(),
		Booking:  booking,
	})
}
