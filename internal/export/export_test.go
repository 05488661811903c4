package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

func TestWriteBookings(t *testing.T) {
	t.Parallel()

	sheet := "http://localhost:5000/uploads/casesheet-1-abc.pdf"
	bookings := []models.Booking{
		{
			ID:            1,
			Name:          "Jane Doe",
			Email:         "jane@example.com",
			Phone:         "555-0100",
			PreferredTime: "2024-06-01 10:00",
			CallType:      models.CallTypeVideo,
			Status:        models.StatusConfirmed,
			CaseSheetURL:  &sheet,
			CreatedAt:     time.Date(2024, 5, 20, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:            2,
			Name:          "John Roe",
			Email:         "john@example.com",
			Phone:         "555-0101",
			PreferredTime: "2024-06-02 11:00",
			CallType:      models.CallTypeVoice,
			Status:        models.StatusPending,
			CreatedAt:     time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"1", "Jane Doe", "jane@example.com", "555-0100", "2024-06-01 10:00", "video", "confirmed", sheet, "2024-05-20 08:30"}, rows[1])
	assert.Equal(t, []string{"2", "John Roe", "john@example.com", "555-0101", "2024-06-02 11:00", "voice", "pending", "", "2024-05-21 09:00"}, rows[2])
}

func TestWriteBookingsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, headers, rows[0])
}
