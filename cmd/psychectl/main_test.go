package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
	"github.com/DyutiRaman/psyche-connect-app/internal/export"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage/sqlstore"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "bookings.db") + "?_busy_timeout=5000&_txlock=immediate"

	path := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  driver: \"sqlite3\"\n  dsn: \"" + dsn + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	return path, dsn
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestMigrateAndListBookings(t *testing.T) {
	cfgPath, dsn := writeConfig(t)

	out, err := run(t, "--config", cfgPath, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	out, err = run(t, "--config", cfgPath, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "applied")

	store, err := sqlstore.Open(config.DriverSQLite, dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	jane, err := store.CreateBooking(ctx, models.NewBooking{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "555-0100",
		PreferredTime: "2024-06-01 10:00",
		CallType:      models.CallTypeVideo,
	})
	require.NoError(t, err)

	_, err = store.CreateBooking(ctx, models.NewBooking{
		Name:          "John Roe",
		Email:         "john@example.com",
		Phone:         "555-0101",
		PreferredTime: "2024-06-02 11:30",
		CallType:      models.CallTypeVoice,
	})
	require.NoError(t, err)

	_, err = store.UpdateStatus(ctx, jane.ID, models.StatusConfirmed)
	require.NoError(t, err)

	out, err = run(t, "--config", cfgPath, "bookings", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "John Roe")

	out, err = run(t, "--config", cfgPath, "bookings", "list", "--status", "confirmed")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "John Roe")

	_, err = run(t, "--config", cfgPath, "bookings", "list", "--status", "archived")
	assert.Error(t, err)

	xlsx := filepath.Join(t.TempDir(), "bookings.xlsx")
	out, err = run(t, "--config", cfgPath, "bookings", "export", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 bookings")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "migrate", "up")
	assert.Error(t, err)
}
