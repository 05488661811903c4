package login

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/DyutiRaman/psyche-connect-app/internal/auth"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/request"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	response.Response
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Authenticator
type Authenticator interface {
	Login(email, password string) (auth.Token, error)
}

func New(log *slog.Logger, authenticator Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.login.New"

		log := log.With(slog.String("op", op))

		var req LoginRequest

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

		token, err := authenticator.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				log.Warn("admin login rejected")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid credentials"))
				return
			}

			log.Error("failed to issue token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log in"))
			return
		}

		log.Info("admin logged in")

		responseOK(w, r, token)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, token auth.Token) {
	render.JSON(w, r, LoginResponse{
		Response:  response.OK(),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
}
