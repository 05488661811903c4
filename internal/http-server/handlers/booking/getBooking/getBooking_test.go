package getBooking

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/getBooking/mocks"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/handlers/slogdiscard"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage"
)

func TestGetBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	booking := &models.Booking{
		ID:            7,
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "555-0100",
		PreferredTime: "2024-06-01 10:00",
		CallType:      models.CallTypeVideo,
		Status:        models.StatusPending,
		CreatedAt:     time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC),
	}

	testCases := []struct {
		name           string
		bookingID      string
		mockSetup      func(m *mocks.BookingGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Success",
			bookingID: "7",
			mockSetup: func(m *mocks.BookingGetter) {
				m.On("GetBooking", mock.Anything, 7).Return(booking, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","booking":{"id":7,"name":"Jane Doe","email":"jane@example.com","phone":"555-0100",
				"preferred_time":"2024-06-01 10:00","call_type":"video","status":"pending","case_sheet_url":null,
				"created_at":"2024-05-20T08:30:00Z"}}`,
		},
		{
			name:           "Invalid booking ID format",
			bookingID:      "abc",
			mockSetup:      func(m *mocks.BookingGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id format"}`,
		},
		{
			name:           "Negative booking ID",
			bookingID:      "-1",
			mockSetup:      func(m *mocks.BookingGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid booking id format"}`,
		},
		{
			name:      "Booking not found",
			bookingID: "99",
			mockSetup: func(m *mocks.BookingGetter) {
				m.On("GetBooking", mock.Anything, 99).Return(nil, storage.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:      "Storage failure",
			bookingID: "7",
			mockSetup: func(m *mocks.BookingGetter) {
				m.On("GetBooking", mock.Anything, 7).Return(nil, errors.New("timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewBookingGetter(t)
			tc.mockSetup(getter)

			router := chi.NewRouter()
			router.Get("/api/bookings/{id}", New(logger, getter))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings/"+tc.bookingID, nil))

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), mocks.NewBookingGetter(t))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "booking id is required")
}
