// Package commands implements the flowqi operator CLI.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/middleware"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/bootstrap"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/config"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flowqi",
		Short: "Operator tools for the FlowQi forecasting backend",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newImportGLCommand())
	rootCmd.AddCommand(newSyncCommand())

	return rootCmd
}

// newLogger writes text logs to stderr so command output on stdout stays clean.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// withApp loads configuration, builds the services and runs fn as userID.
func withApp(ctx context.Context, userID string, fn func(context.Context, *bootstrap.App) error) error {
	logger := newLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer app.Close()

	ctx = middleware.WithLogger(ctx, logger.With(slog.String("user_id", userID), slog.String("source", "cli")))
	ctx = middleware.WithUserID(ctx, userID)
	return fn(ctx, app)
}
