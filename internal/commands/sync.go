package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/bootstrap"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize data from Exact Online",
	}
	cmd.AddCommand(newSyncGLAccountsCommand())
	cmd.AddCommand(newSyncTransactionsCommand())
	return cmd
}

func newSyncGLAccountsCommand() *cobra.Command {
	var orgID, userID string

	cmd := &cobra.Command{
		Use:   "gl-accounts",
		Short: "Copy the GL accounts of the connected Exact division",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), userID, func(ctx context.Context, app *bootstrap.App) error {
				log, err := app.Services.ExactSync.SyncGLAccounts(ctx, orgID, userID)
				if log != nil {
					printSyncLog(cmd.OutOrStdout(), log)
				}
				return err
			})
		},
	}

	addOrgUserFlags(cmd, &orgID, &userID)
	return cmd
}

func newSyncTransactionsCommand() *cobra.Command {
	var orgID, userID, from, to string

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Copy booked transaction lines in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(from, to)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), userID, func(ctx context.Context, app *bootstrap.App) error {
				log, err := app.Services.ExactSync.SyncTransactions(ctx, orgID, userID, start, end)
				if log != nil {
					printSyncLog(cmd.OutOrStdout(), log)
				}
				return err
			})
		},
	}

	addOrgUserFlags(cmd, &orgID, &userID)
	cmd.Flags().StringVar(&from, "from", "", "first booking date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "last booking date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func addOrgUserFlags(cmd *cobra.Command, orgID, userID *string) {
	cmd.Flags().StringVar(orgID, "org", "", "organization ID (required)")
	cmd.Flags().StringVar(userID, "user", "", "ID of the user the sync runs as (required)")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("user")
}

// parseDateRange parses an inclusive YYYY-MM-DD range.
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from %q: expected YYYY-MM-DD", from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to %q: expected YYYY-MM-DD", to)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return start, end, nil
}

func printSyncLog(w io.Writer, log *domain.SyncLog) {
	fmt.Fprintf(w, "Sync %s: %s\n", log.SyncLogID, log.Status)
	fmt.Fprintf(w, "Processed: %d  Created: %d  Updated: %d  Failed: %d\n", log.Processed, log.Created, log.Updated, log.Failed)
	if log.ErrorMessage != "" {
		fmt.Fprintf(w, "Message: %s\n", log.ErrorMessage)
	}
}
