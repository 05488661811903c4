package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Placeholders must appear in ascending order within a statement:
// go-sqlite3 binds "$N" parameters by order of appearance.

const bookingColumns = `id, name, email, phone, preferred_time, call_type, status, case_sheet_url, created_at`

type Storage struct {
	DB     *sql.DB
	driver string
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	return Open(dbCfg.Driver, dbCfg.DataSource())
}

func Open(driver, dsn string) (*Storage, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if driver == config.DriverPostgres {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db, driver: driver}, nil
}

func (s *Storage) Driver() string {
	return s.driver
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) CreateBooking(ctx context.Context, nb models.NewBooking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (name, email, phone, preferred_time, call_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	booking := models.Booking{
		Name:          nb.Name,
		Email:         nb.Email,
		Phone:         nb.Phone,
		PreferredTime: nb.PreferredTime,
		CallType:      nb.CallType,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	err := s.DB.QueryRowContext(ctx, query,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.PreferredTime,
		string(booking.CallType),
		string(booking.Status),
		booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &booking, nil
}

func (s *Storage) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	return getBooking(ctx, s.DB, id)
}

func (s *Storage) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err = scanBooking(rows, &booking); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

func (s *Storage) GetBookingStats(ctx context.Context) (models.BookingStats, error) {
	query := `
		SELECT status, COUNT(*)
		FROM bookings
		GROUP BY status`

	var stats models.BookingStats

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return stats, fmt.Errorf("failed to get booking stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int
		)
		if err = rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("failed to scan booking stats: %w", err)
		}

		switch models.Status(status) {
		case models.StatusPending:
			stats.Pending = count
		case models.StatusConfirmed:
			stats.Confirmed = count
		case models.StatusCancelled:
			stats.Cancelled = count
		}
		stats.Total += count
	}

	if err = rows.Err(); err != nil {
		return stats, fmt.Errorf("error iterating booking stats: %w", err)
	}

	return stats, nil
}

// UpdateStatus moves the booking to status if the transition table allows it.
func (s *Storage) UpdateStatus(ctx context.Context, id int, status models.Status) (*models.Booking, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1`+s.lockClause(), id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking status: %w", err)
	}

	next, err := models.Status(current).Transition(status)
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, string(next), id); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking, err := getBooking(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return booking, nil
}

// AttachCaseSheet stores url on the booking and returns the URL it replaced, if any.
func (s *Storage) AttachCaseSheet(ctx context.Context, id int, url string) (*models.Booking, string, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previous sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT case_sheet_url FROM bookings WHERE id = $1`+s.lockClause(), id).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", storage.ErrBookingNotFound
		}
		return nil, "", fmt.Errorf("failed to get case sheet: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE bookings SET case_sheet_url = $1 WHERE id = $2`, url, id); err != nil {
		return nil, "", fmt.Errorf("failed to save case sheet url: %w", err)
	}

	booking, err := getBooking(ctx, tx, id)
	if err != nil {
		return nil, "", err
	}

	if err = tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("failed to commit case sheet: %w", err)
	}

	return booking, previous.String, nil
}

// ClearCaseSheet removes the case sheet URL and returns the value it held.
func (s *Storage) ClearCaseSheet(ctx context.Context, id int) (string, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previous sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT case_sheet_url FROM bookings WHERE id = $1`+s.lockClause(), id).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrBookingNotFound
		}
		return "", fmt.Errorf("failed to get case sheet: %w", err)
	}

	if !previous.Valid || previous.String == "" {
		return "", storage.ErrCaseSheetNotFound
	}

	if _, err = tx.ExecContext(ctx, `UPDATE bookings SET case_sheet_url = NULL WHERE id = $1`, id); err != nil {
		return "", fmt.Errorf("failed to clear case sheet url: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit case sheet removal: %w", err)
	}

	return previous.String, nil
}

func (s *Storage) lockClause() string {
	if s.driver == config.DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getBooking(ctx context.Context, q queryRower, id int) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	var booking models.Booking
	if err := scanBooking(q.QueryRowContext(ctx, query, id), &booking); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func scanBooking(row scanner, booking *models.Booking) error {
	var (
		callType string
		status   string
	)

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.PreferredTime,
		&callType,
		&status,
		&booking.CaseSheetURL,
		&booking.CreatedAt,
	)
	if err != nil {
		return err
	}

	booking.CallType = models.CallType(callType)
	booking.Status = models.Status(status)

	return nil
}
