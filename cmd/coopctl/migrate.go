package main

import (
	"errors"
	"fmt"
	"os"

	"transitcoop/internal/db"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				_ = godotenv.Load()
				addr = os.Getenv("DB_ADDR")
			}
			if addr == "" {
				return errors.New("database address required (--db or DB_ADDR)")
			}

			if err := db.Migrate(addr); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "db", "", "Postgres connection string (defaults to DB_ADDR)")
	return cmd
}
