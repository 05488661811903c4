package deleteCaseSheet

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/deleteCaseSheet/mocks"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/handlers/slogdiscard"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage"
)

const sheetURL = "http://localhost:5000/uploads/casesheet-3-abc.pdf"

func TestDeleteCaseSheetHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		setup          func(c *mocks.CaseSheetClearer, f *mocks.FileRemover)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Success",
			bookingID: "3",
			setup: func(c *mocks.CaseSheetClearer, f *mocks.FileRemover) {
				c.On("ClearCaseSheet", mock.Anything, 3).Return(sheetURL, nil)
				f.On("Delete", mock.Anything, sheetURL).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:      "File removal failure still succeeds",
			bookingID: "3",
			setup: func(c *mocks.CaseSheetClearer, f *mocks.FileRemover) {
				c.On("ClearCaseSheet", mock.Anything, 3).Return(sheetURL, nil)
				f.On("Delete", mock.Anything, sheetURL).Return(errors.New("access denied"))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Invalid booking ID format",
			bookingID:      "3a",
			setup:          func(c *mocks.CaseSheetClearer, f *mocks.FileRemover) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id format"}`,
		},
		{
			name:      "Booking not found",
			bookingID: "9",
			setup: func(c *mocks.CaseSheetClearer, f *mocks.FileRemover) {
				c.On("ClearCaseSheet", mock.Anything, 9).Return("", storage.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:      "No case sheet",
			bookingID: "3",
			setup: func(c *mocks.CaseSheetClearer, f *mocks.FileRemover) {
				c.On("ClearCaseSheet", mock.Anything, 3).Return("", storage.ErrCaseSheetNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"case sheet not found"}`,
		},
		{
			name:      "Storage failure",
			bookingID: "3",
			setup: func(c *mocks.CaseSheetClearer, f *mocks.FileRemover) {
				c.On("ClearCaseSheet", mock.Anything, 3).Return("", errors.New("tx aborted"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete case sheet"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			clearer := mocks.NewCaseSheetClearer(t)
			files := mocks.NewFileRemover(t)
			tc.setup(clearer, files)

			router := chi.NewRouter()
			router.Delete("/api/bookings/{id}/casesheet", New(logger, clearer, files))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/bookings/"+tc.bookingID+"/casesheet", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
