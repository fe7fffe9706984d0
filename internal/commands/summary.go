package commands

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/civicledger/munibudget/internal/aggregate"
)

func newSummaryCommand() *cobra.Command {
	var period string
	var mode string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show rollup totals and fund distribution for a fiscal period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if period == "" {
				period = a.cfg.Fiscal.YearLabel
			}

			rollupMode, err := a.cfg.RollupMode()
			if err != nil {
				return err
			}
			if mode != "" {
				if rollupMode, err = aggregate.ParseRollupMode(mode); err != nil {
					return err
				}
			}
			return runSummary(a, period, rollupMode)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "fiscal period label (default: configured fiscal year)")
	cmd.Flags().StringVar(&mode, "mode", "", "rollup mode: leaf-only or additive (default: configured mode)")

	return cmd
}

func runSummary(a *app, period string, mode aggregate.RollupMode) error {
	forest, _, err := a.svc.LoadPeriod(period)
	if err != nil {
		return err
	}
	if forest.Len() == 0 {
		return fmt.Errorf("no accounts stored for period %s", period)
	}

	s := a.svc.Aggregate(forest, mode)

	fmt.Printf("Budget summary for %s (%s rollup)\n\n", period, s.Mode)
	for _, root := range forest.Roots() {
		tot := s.ByCode[root.Code.String()]
		fmt.Printf("  %-12s %-32s budget %12s  actual %12s  variance %12s\n",
			root.Code, root.Record.Description,
			display(tot.RollupBudget), display(tot.RollupActual), display(tot.Variance))
	}

	fmt.Printf("\nTotals: budget %s, actual %s, variance %s\n",
		display(s.TotalBudget), display(s.TotalActual), display(s.TotalVariance))

	fmt.Println("\nFund distribution:")
	for _, share := range s.Funds {
		name := string(share.Fund)
		if name == "" {
			name = "unclassified"
		}
		pct := share.Percent.Mul(decimal.NewFromInt(100)).StringFixed(2)
		fmt.Printf("  %-16s %12s  %6s%%\n", name, display(share.Budget), pct)
	}
	return nil
}

// display renders an exact decimal amount as currency.
func display(d decimal.Decimal) string {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
