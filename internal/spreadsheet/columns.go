package spreadsheet

import "strings"

// Field is a semantic column in a budget sheet.
type Field string

const (
	FieldAccountNumber Field = "account_number"
	FieldName          Field = "name"
	FieldType          Field = "type"
	FieldFund          Field = "fund"
	FieldFundClass     Field = "fund_class"
	FieldBudgetAmount  Field = "budget_amount"
	FieldActualAmount  Field = "actual_amount"
)

// fieldOrder fixes the matching order so "first alias match wins" is
// deterministic.
var fieldOrder = []Field{
	FieldAccountNumber,
	FieldName,
	FieldType,
	FieldFund,
	FieldFundClass,
	FieldBudgetAmount,
	FieldActualAmount,
}

// aliases maps each semantic field to the header strings that identify
// it. Comparison is case-insensitive on trimmed text.
var aliases = map[Field][]string{
	FieldAccountNumber: {"account number", "account", "number", "acct num"},
	FieldName:          {"name", "description", "account name", "desc"},
	FieldType:          {"type", "account type", "acct type"},
	FieldFund:          {"fund", "fund number"},
	FieldFundClass:     {"fund class", "class"},
	FieldBudgetAmount:  {"budget", "amount", "budget amount", "total"},
	FieldActualAmount:  {"actual", "actual amount", "ytd actual", "spent"},
}

// Header discovery scans at most this many rows and columns.
const headerScanWindow = 10

// findHeaderRow scans the top-left window for a cell containing both
// "account" and "number" (case-insensitive). Returns the 0-based row
// index.
func findHeaderRow(grid [][]string) (int, bool) {
	for r := 0; r < len(grid) && r < headerScanWindow; r++ {
		row := grid[r]
		for c := 0; c < len(row) && c < headerScanWindow; c++ {
			cell := strings.ToLower(row[c])
			if strings.Contains(cell, "account") && strings.Contains(cell, "number") {
				return r, true
			}
		}
	}
	return 0, false
}

// mapColumns matches every cell of the header row against the alias
// table. The first column matching a field claims it; later matches for
// an already-claimed field are ignored. Unmatched fields are simply
// absent.
func mapColumns(headerRow []string) map[Field]int {
	mapped := make(map[Field]int)
	for col, cell := range headerRow {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		if normalized == "" {
			continue
		}
		for _, field := range fieldOrder {
			if _, taken := mapped[field]; taken {
				continue
			}
			if matchesAlias(field, normalized) {
				mapped[field] = col
				break
			}
		}
	}
	return mapped
}

func matchesAlias(field Field, normalized string) bool {
	for _, alias := range aliases[field] {
		if normalized == alias {
			return true
		}
	}
	return false
}
