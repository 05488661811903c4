package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/request"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

type BookingRequest struct {
	Name          string `json:"name" validate:"required,trimmed,max=200"`
	Email         string `json:"email" validate:"required,trimmed,email"`
	Phone         string `json:"phone" validate:"required,trimmed,max=32"`
	PreferredTime string `json:"preferred_time" validate:"required,trimmed,preferred_time"`
	CallType      string `json:"call_type" validate:"required,oneof=video voice"`
	// Status is accepted from older clients and ignored: new bookings start pending.
	Status string `json:"status,omitempty"`
}

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, booking models.NewBooking) (*models.Booking, error)
}

var validate = newValidator()

// Fields are stored exactly as submitted, so padded values are rejected
// instead of being rewritten.
func newValidator() *validator.Validate {
	v := validator.New()

	if err := v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return strings.TrimSpace(value) == value
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("preferred_time", func(fl validator.FieldLevel) bool {
		_, ok := models.ParsePreferredTime(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}

	return v
}

func New(log *slog.Logger, creator BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(slog.String("op", op))

		var req BookingRequest

		err := request.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}

			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request"))
			return
		}

		booking, err := creator.CreateBooking(r.Context(), models.NewBooking{
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			PreferredTime: req.PreferredTime,
			CallType:      models.CallType(req.CallType),
		})
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		log.Info("booking created", slog.Int("booking_id", booking.ID))

		responseCreated(w, r, booking)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, booking *models.Booking) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  booking,
	})
}
