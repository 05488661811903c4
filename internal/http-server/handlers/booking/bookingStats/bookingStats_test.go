package bookingStats

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/bookingStats/mocks"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/handlers/slogdiscard"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

func TestBookingStatsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.StatsGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.StatsGetter) {
				m.On("GetBookingStats", mock.Anything).Return(models.BookingStats{Total: 6, Pending: 3, Confirmed: 2, Cancelled: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","stats":{"total":6,"pending":3,"confirmed":2,"cancelled":1}}`,
		},
		{
			name: "Storage failure",
			mockSetup: func(m *mocks.StatsGetter) {
				m.On("GetBookingStats", mock.Anything).Return(models.BookingStats{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get booking stats"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewStatsGetter(t)
			tc.mockSetup(getter)

			rr := httptest.NewRecorder()
			New(logger, getter).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings/stats", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
