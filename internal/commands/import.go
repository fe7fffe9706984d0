package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicledger/munibudget/internal/auditlog"
)

func newImportCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a budget workbook and persist it for a fiscal period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if period == "" {
				period = a.cfg.Fiscal.YearLabel
			}
			return runImport(a, args[0], period)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "fiscal period label (default: configured fiscal year)")

	return cmd
}

func runImport(a *app, path, period string) error {
	forest, reporter, err := a.svc.ImportBudget(path)
	if err != nil {
		return err
	}

	for _, issue := range reporter.Issues() {
		fmt.Printf("  %s\n", issue.Error())
	}

	if err := a.store.SaveAccounts(period, forest.Records()); err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp: time.Now(),
		Action:    "import",
		File:      filepath.Base(path),
		Period:    period,
		Rows:      forest.Len(),
		Warnings:  len(reporter.Warnings()),
	}
	if err := auditlog.Append(a.dir, []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}

	fmt.Printf("Imported %d accounts into %s (%s)\n", forest.Len(), period, reporter.Summary())
	return nil
}
