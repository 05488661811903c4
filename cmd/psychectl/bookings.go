package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DyutiRaman/psyche-connect-app/internal/export"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

func newBookingsCommand(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Inspect and export bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newBookingsListCommand(open))
	cmd.AddCommand(newBookingsExportCommand(open))
	return cmd
}

func newBookingsListCommand(open openFunc) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !models.Status(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}

			storage, err := open()
			if err != nil {
				return err
			}
			defer storage.Close()

			bookings, err := storage.GetAllBookings(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPREFERRED TIME\tCALL\tSTATUS\tCASE SHEET")
			for _, b := range bookings {
				if status != "" && b.Status != models.Status(status) {
					continue
				}

				caseSheet := "-"
				if b.CaseSheetURL != nil {
					caseSheet = *b.CaseSheetURL
				}

				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.Name, b.Email, b.PreferredTime, b.CallType, b.Status, caseSheet)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show bookings in this status (pending, confirmed, cancelled)")
	return cmd
}

func newBookingsExportCommand(open openFunc) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all bookings to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = "bookings_" + time.Now().Format("2006-01-02") + ".xlsx"
			}

			storage, err := open()
			if err != nil {
				return err
			}
			defer storage.Close()

			bookings, err := storage.GetAllBookings(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}

			if err = export.WriteBookings(f, bookings); err != nil {
				_ = f.Close()
				return err
			}

			if err = f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d bookings to %s\n", len(bookings), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "out", "", "Destination file (default bookings_<date>.xlsx)")
	return cmd
}
