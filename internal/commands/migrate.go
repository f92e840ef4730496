package commands

import (
	"fmt"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/config"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Database migrations applied.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No new migrations to apply.")
			}
			return nil
		},
	}
}
