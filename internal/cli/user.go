package cli

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"quiz-trainer/internal/config"
	pgstore "quiz-trainer/internal/infra/postgres"
)

// NewUserCmd manages accounts in the Postgres users table.
func NewUserCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add USERNAME PASSWORD",
		Short: "Create a login account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured; file credentials are edited by hand")
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}

			pool, err := pgxpool.Connect(cmd.Context(), cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pgstore.NewCredentialStore(pool).AddUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			log.Printf("user %s added", args[0])
			return nil
		},
	})
	return cmd
}
