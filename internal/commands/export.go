package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicledger/munibudget/internal/auditlog"
)

func newExportCommand() *cobra.Command {
	var period string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored fiscal period to a styled workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if period == "" {
				period = a.cfg.Fiscal.YearLabel
			}
			if out == "" {
				out = filepath.Join(a.dir, "exports", fmt.Sprintf("budget-%s.xlsx", period))
			}
			return runExport(a, period, out)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "fiscal period label (default: configured fiscal year)")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: exports/budget-<period>.xlsx)")

	return cmd
}

func runExport(a *app, period, out string) error {
	forest, reporter, err := a.svc.LoadPeriod(period)
	if err != nil {
		return err
	}
	if forest.Len() == 0 {
		return fmt.Errorf("no accounts stored for period %s", period)
	}
	if !reporter.Empty() {
		fmt.Printf("Structural issues in stored data (%s)\n", reporter.Summary())
	}

	if err := a.svc.ExportBudget(forest, out, period); err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp: time.Now(),
		Action:    "export",
		File:      filepath.Base(out),
		Period:    period,
		Rows:      forest.Len(),
		Warnings:  len(reporter.Warnings()),
	}
	if err := auditlog.Append(a.dir, []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording audit entry: %w", err)
	}

	fmt.Printf("Exported %d accounts to %s\n", forest.Len(), out)
	return nil
}
