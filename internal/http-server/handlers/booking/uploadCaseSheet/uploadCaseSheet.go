package uploadCaseSheet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/DyutiRaman/psyche-connect-app/internal/attachments"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/api/response"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/sl"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage"
)

const (
	formField    = "file"
	pdfMIME      = "application/pdf"
	formOverhead = 64 << 10
	maxMemory    = 1 << 20
)

type CaseSheetResponse struct {
	response.Response
	CaseSheetURL string          `json:"case_sheet_url"`
	Booking      *models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CaseSheetAttacher
type CaseSheetAttacher interface {
	GetBooking(ctx context.Context, id int) (*models.Booking, error)
	AttachCaseSheet(ctx context.Context, id int, url string) (*models.Booking, string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=FileStore
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// New accepts a PDF case sheet of at most maxSize bytes in the multipart
// field "file" and links it to the booking.
func New(log *slog.Logger, attacher CaseSheetAttacher, files FileStore, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.uploadCaseSheet.New"

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

		if _, err = attacher.GetBooking(r.Context(), bookingID); err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				log.Warn("booking not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to get booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload case sheet"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)

		if err = r.ParseMultipartForm(maxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				log.Warn("case sheet too large", sl.Err(err))
				render.Status(r, http.StatusRequestEntityTooLarge)
				render.JSON(w, r, response.Error("file too large"))
				return
			}

			log.Error("failed to parse multipart form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid multipart form"))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile(formField)
		if err != nil {
			log.Error("file is missing", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("file is required"))
			return
		}
		defer file.Close()

		if header.Size > maxSize {
			log.Warn("case sheet too large", slog.Int64("size", header.Size))
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("file too large"))
			return
		}

		detected, err := mimetype.DetectReader(file)
		if err != nil {
			log.Error("failed to read case sheet", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to read file"))
			return
		}

		if !detected.Is(pdfMIME) {
			log.Warn("case sheet is not a pdf", slog.String("detected", detected.String()))
			render.Status(r, http.StatusUnsupportedMediaType)
			render.JSON(w, r, response.Error("case sheet must be a PDF"))
			return
		}

		if _, err = file.Seek(0, io.SeekStart); err != nil {
			log.Error("failed to rewind case sheet", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload case sheet"))
			return
		}

		url, err := files.Save(r.Context(), attachments.CaseSheetName(bookingID, ".pdf"), file, header.Size, pdfMIME)
		if err != nil {
			log.Error("failed to store case sheet", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload case sheet"))
			return
		}

		booking, previous, err := attacher.AttachCaseSheet(r.Context(), bookingID, url)
		if err != nil {
			if delErr := files.Delete(context.WithoutCancel(r.Context()), url); delErr != nil {
				log.Error("failed to remove orphaned case sheet", slog.String("url", url), sl.Err(delErr))
			}

			if errors.Is(err, storage.ErrBookingNotFound) {
				log.Warn("booking disappeared during upload")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to save case sheet url", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload case sheet"))
			return
		}

		if previous != "" && previous != url {
			if err = files.Delete(r.Context(), previous); err != nil {
				log.Warn("failed to remove previous case sheet", slog.String("url", previous), sl.Err(err))
			}
		}

		log.Info("case sheet uploaded", slog.String("url", url), slog.Int64("size", header.Size))

		responseOK(w, r, url, booking)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, url string, booking *models.Booking) {
	render.JSON(w, r, CaseSheetResponse{
		Response:     response.OK(),
		CaseSheetURL: url,
		Booking:      booking,
	})
}
