package exportBookings

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DyutiRaman/psyche-connect-app/internal/export"
	"github.com/DyutiRaman/psyche-connect-app/internal/http-server/handlers/booking/exportBookings/mocks"
	"github.com/DyutiRaman/psyche-connect-app/internal/lib/logger/handlers/slogdiscard"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

func TestExportBookings(t *testing.T) {
	t.Parallel()

	getter := mocks.NewBookingsGetter(t)
	getter.On("GetAllBookings", mock.Anything).Return([]models.Booking{
		{ID: 1, Name: "Jane Doe", Email: "jane@example.com", CallType: models.CallTypeVideo, Status: models.StatusPending},
	}, nil)

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), getter).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings/export", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment;")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane Doe", rows[1][1])
}

func TestExportBookingsStorageFailure(t *testing.T) {
	t.Parallel()

	getter := mocks.NewBookingsGetter(t)
	getter.On("GetAllBookings", mock.Anything).Return(nil, errors.New("connection refused"))

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), getter).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"Error","error":"failed to export bookings"}`, rr.Body.String())
}
