// Package export renders bookings as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

const (
	SheetName   = "Bookings"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{"ID", "Name", "Email", "Phone", "Preferred Time", "Call Type", "Status", "Case Sheet", "Created At"}

var widths = map[string]float64{
	"A": 8,
	"B": 24,
	"C": 30,
	"D": 16,
	"E": 20,
	"F": 10,
	"G": 12,
	"H": 60,
	"I": 20,
}

// Workbook builds a single-sheet workbook with one row per booking.
// The caller closes the returned file.
func Workbook(bookings []models.Booking) (*excelize.File, error) {
	const op = "export.Workbook"

	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FED7AA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err = f.SetCellStyle(SheetName, "A1", lastHeader, style); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, b := range bookings {
		row := i + 2

		caseSheet := ""
		if b.CaseSheetURL != nil {
			caseSheet = *b.CaseSheetURL
		}

		values := []any{
			b.ID,
			b.Name,
			b.Email,
			b.Phone,
			b.PreferredTime,
			string(b.CallType),
			string(b.Status),
			caseSheet,
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err = f.SetSheetRow(SheetName, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	for col, width := range widths {
		_ = f.SetColWidth(SheetName, col, col, width)
	}

	return f, nil
}

// WriteBookings writes the workbook for bookings to w.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f, err := Workbook(bookings)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = f.Write(w); err != nil {
		return fmt.Errorf("export.WriteBookings: %w", err)
	}

	return nil
}
