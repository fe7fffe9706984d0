// Package aggregate computes rollup totals, variances, and fund
// distribution over an assembled forest. All arithmetic is exact decimal.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/civicledger/munibudget/internal/hierarchy"
	"github.com/civicledger/munibudget/internal/model"
)

// RollupMode selects how a parent's total relates to its own stored
// amount. Municipal sheets commonly store the parent row as the subtotal
// of its children; adding the parent's own amount on top of the children
// then double-counts. LeafOnly sums only childless nodes per ancestor.
type RollupMode string

const (
	// RollupAdditive sums a node's own amount plus all descendant
	// amounts.
	RollupAdditive RollupMode = "additive"
	// RollupLeafOnly sums only leaf amounts under each node; a leaf's
	// rollup is its own amount.
	RollupLeafOnly RollupMode = "leaf-only"
)

// ParseRollupMode converts config/flag text to a RollupMode.
func ParseRollupMode(s string) (RollupMode, error) {
	switch RollupMode(s) {
	case RollupAdditive, RollupLeafOnly:
		return RollupMode(s), nil
	}
	return "", fmt.Errorf("unknown rollup mode %q (want %q or %q)", s, RollupAdditive, RollupLeafOnly)
}

// Totals holds the derived values for one node.
type Totals struct {
	RollupBudget    decimal.Decimal
	RollupActual    decimal.Decimal
	Variance        decimal.Decimal // actual - budget; positive = over budget
	VariancePercent decimal.Decimal // variance / rollup budget, 0 when budget is 0
}

// FundShare is one fund type's slice of the total budget.
type FundShare struct {
	Fund    model.FundType
	Budget  decimal.Decimal
	Percent decimal.Decimal // share of total budget, 0 when total is 0
}

// Summary is the annotated view of a forest: per-code totals plus
// forest-level figures.
type Summary struct {
	Mode          RollupMode
	ByCode        map[string]Totals
	Funds         []FundShare
	TotalBudget   decimal.Decimal
	TotalActual   decimal.Decimal
	TotalVariance decimal.Decimal
}

const percentPlaces = 6

// Aggregate walks the forest post-order and computes rollups in the given
// mode, then groups own budget amounts by fund type for the distribution.
// The forest is not mutated.
func Aggregate(forest *hierarchy.Forest, mode RollupMode) *Summary {
	s := &Summary{
		Mode:          mode,
		ByCode:        make(map[string]Totals, forest.Len()),
		TotalBudget:   decimal.Zero,
		TotalActual:   decimal.Zero,
		TotalVariance: decimal.Zero,
	}

	for _, root := range forest.Roots() {
		rollup(root, mode, s.ByCode)
	}

	// Forest totals sum own amounts so they agree with what a re-imported
	// export would contain.
	for n := range forest.All() {
		s.TotalBudget = s.TotalBudget.Add(n.Record.Budget)
		s.TotalActual = s.TotalActual.Add(n.Record.Actual)
	}
	s.TotalVariance = s.TotalActual.Sub(s.TotalBudget)

	s.Funds = fundDistribution(forest, s.TotalBudget)
	return s
}

func rollup(n *hierarchy.Node, mode RollupMode, byCode map[string]Totals) (budget, actual decimal.Decimal) {
	childBudget := decimal.Zero
	childActual := decimal.Zero
	for _, child := range n.Children {
		b, a := rollup(child, mode, byCode)
		childBudget = childBudget.Add(b)
		childActual = childActual.Add(a)
	}

	switch {
	case mode == RollupAdditive:
		budget = n.Record.Budget.Add(childBudget)
		actual = n.Record.Actual.Add(childActual)
	case len(n.Children) == 0:
		// Leaf-only: a leaf contributes its own amount.
		budget = n.Record.Budget
		actual = n.Record.Actual
	default:
		// Leaf-only: an interior node is purely the sum of its leaves.
		budget = childBudget
		actual = childActual
	}

	variance := actual.Sub(budget)
	variancePct := decimal.Zero
	if !budget.IsZero() {
		variancePct = variance.DivRound(budget, percentPlaces)
	}

	byCode[n.Code.String()] = Totals{
		RollupBudget:    budget,
		RollupActual:    actual,
		Variance:        variance,
		VariancePercent: variancePct,
	}
	return budget, actual
}

// fundDistribution groups own budget amounts (not rollups, which would
// double-count across levels) by fund type. Percentages are guarded: all
// zero when the total budget is zero.
func fundDistribution(forest *hierarchy.Forest, total decimal.Decimal) []FundShare {
	sums := make(map[model.FundType]decimal.Decimal)
	for n := range forest.All() {
		sums[n.Record.FundClass] = sums[n.Record.FundClass].Add(n.Record.Budget)
	}

	shares := make([]FundShare, 0, len(sums))
	for fund, budget := range sums {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = budget.DivRound(total, percentPlaces)
		}
		shares = append(shares, FundShare{Fund: fund, Budget: budget, Percent: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Budget.Equal(shares[j].Budget) {
			return shares[i].Budget.GreaterThan(shares[j].Budget)
		}
		return shares[i].Fund < shares[j].Fund
	})
	return shares
}
