package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
	"github.com/DyutiRaman/psyche-connect-app/internal/storage/sqlstore"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "psychectl",
		Short:         "Operator tool for the psyche-connect booking database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to config file")

	open := func() (*sqlstore.Storage, error) {
		dbCfg, err := config.LoadDatabase(configPath)
		if err != nil {
			return nil, err
		}

		return sqlstore.InitDB(dbCfg)
	}

	cmd.AddCommand(newMigrateCommand(open))
	cmd.AddCommand(newBookingsCommand(open))
	return cmd
}

type openFunc func() (*sqlstore.Storage, error)
