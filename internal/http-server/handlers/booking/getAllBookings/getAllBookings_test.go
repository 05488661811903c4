package getAllBookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/getAllBookings/mocks"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/handlers/slogdiscard"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

func TestGetAllBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	sheet := "http://localhost:5000/uploads/casesheet-2-abc.pdf"
	testTime := time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC)
	testBookings := []models.Booking{
		{
			ID:            2,
			Name:          "John Roe",
			Email:         "john@example.com",
			Phone:         "555-0101",
			PreferredTime: "2024-06-02 11:00",
			CallType:      models.CallTypeVoice,
			Status:        models.StatusConfirmed,
			CaseSheetURL:  &sheet,
			CreatedAt:     testTime.Add(time.Hour),
		},
		{
			ID:            1,
			Name:          "Jane Doe",
			Email:         "jane@example.com",
			Phone:         "555-0100",
			PreferredTime: "2024-06-01 10:00",
			CallType:      models.CallTypeVideo,
			Status:        models.StatusPending,
			CreatedAt:     testTime,
		},
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.BookingsGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success with bookings",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("GetAllBookings", mock.Anything).Return(testBookings, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp BookingsResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.Len(t, resp.Bookings, 2)
				assert.Equal(t, 2, resp.Bookings[0].ID)
				require.NotNil(t, resp.Bookings[0].CaseSheetURL)
				assert.Equal(t, sheet, *resp.Bookings[0].CaseSheetURL)
				assert.Equal(t, 1, resp.Bookings[1].ID)
				assert.Nil(t, resp.Bookings[1].CaseSheetURL)
			},
		},
		{
			name: "Success with empty bookings",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("GetAllBookings", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","bookings":[]}`,
		},
		{
			name: "Storage failure",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("GetAllBookings", mock.Anything).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get bookings"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewBookingsGetter(t)
			tc.mockSetup(getter)

			rr := httptest.NewRecorder()
			New(logger, getter).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			}
			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
