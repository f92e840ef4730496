package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/platform/bootstrap"
	"github.com/spf13/cobra"
)

func newImportGLCommand() *cobra.Command {
	var orgID, userID, file string

	cmd := &cobra.Command{
		Use:   "import-gl",
		Short: "Import a chart of accounts from an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.EqualFold(filepath.Ext(file), ".xlsx") {
				return fmt.Errorf("only .xlsx workbooks are supported: %s", file)
			}
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening workbook: %w", err)
			}
			defer f.Close()

			return withApp(cmd.Context(), userID, func(ctx context.Context, app *bootstrap.App) error {
				result, err := app.Services.GLAccount.ImportGLAccounts(ctx, orgID, userID, f)
				if err != nil {
					return err
				}
				printImportResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization ID (required)")
	cmd.Flags().StringVar(&userID, "user", "", "ID of the user the import runs as (required)")
	cmd.Flags().StringVar(&file, "file", "", "path to the .xlsx workbook (required)")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func printImportResult(w io.Writer, result *domain.ImportResult) {
	fmt.Fprintf(w, "Imported: %d\nSkipped: %d\nErrors: %d\n", result.Imported, result.Skipped, result.Errors)
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "  row %d (%s): %s\n", issue.Row, issue.Code, issue.Reason)
	}
}
