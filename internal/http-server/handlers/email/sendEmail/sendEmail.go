package sendEmail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/middleware/mwauth"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/request"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/mailer"
)

// EmailRequest keeps the camelCase field names the dashboard already sends.
type EmailRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PreferredTime string `json:"preferredTime" validate:"required"`
	CallType      string `json:"callType" validate:"required,oneof=video voice"`
	MeetingLink   string `json:"meetingLink,omitempty" validate:"omitempty,url"`
	Type          string `json:"type" validate:"required,oneof=confirmation reminder"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	Notify(ctx context.Context, n mailer.Notification) error
}

func New(log *slog.Logger, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.email.sendEmail.New"

		log := log.With(slog.String("op", op))

		var req EmailRequest

		err := request.DecodeJSON(r.Body, &req)
		if err != nil {
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

		log = log.With(slog.String("type", req.Type))

		err = notifier.Notify(r.Context(), mailer.Notification{
			Name:          req.Name,
			Email:         req.Email,
			PreferredTime: req.PreferredTime,
			CallType:      req.CallType,
			MeetingLink:   req.MeetingLink,
			Kind:          mailer.Kind(req.Type),
		})
		if err != nil {
			log.Error("failed to send email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to send email"))
			return
		}

		admin, _ := mwauth.AdminEmail(r.Context())
		log.Info("email sent", slog.String("admin", admin))

		render.JSON(w, r, response.OK())
	}
}
