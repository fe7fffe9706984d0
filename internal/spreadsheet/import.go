// Package spreadsheet round-trips budget forests to and from workbook
// files: fuzzy header/column discovery on import, styled fixed layout on
// export.
package spreadsheet

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/civicledger/munibudget/internal/model"
	"github.com/civicledger/munibudget/internal/report"
)

// Importer streams account records out of a workbook file.
type Importer struct {
	logger *log.Logger
}

// NewImporter creates an Importer writing diagnostics to logger. A nil
// logger disables diagnostic output.
func NewImporter(logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Importer{logger: logger}
}

// Import reads the first sheet of an .xlsx or .xls file. A missing
// header row, unreadable file, or unsupported extension is fatal; every
// per-row or per-field problem is downgraded to a report issue and the
// scan continues. Streaming stops at the first blank account-number cell
// below the header (end-of-data sentinel, not an error).
func (imp *Importer) Import(path string, reporter *report.Reporter) ([]model.AccountRecord, error) {
	grid, err := readGrid(path)
	if err != nil {
		return nil, err
	}

	headerIdx, found := findHeaderRow(grid)
	if !found {
		return nil, HeaderNotFoundError{Path: path}
	}

	cols := mapColumns(grid[headerIdx])
	imp.logger.Debug("header row located", "path", path, "row", headerIdx+1, "columns", len(cols))

	codeCol, ok := cols[FieldAccountNumber]
	if !ok {
		// The discovery cell guarantees an account-number header exists
		// somewhere in the window, but it may sit outside this row's
		// alias matches (e.g. a title cell). Treat as no usable header.
		return nil, HeaderNotFoundError{Path: path}
	}

	var records []model.AccountRecord
	for i := headerIdx + 1; i < len(grid); i++ {
		row := grid[i]
		codeText := cellAt(row, codeCol)
		if codeText == "" {
			break
		}
		records = append(records, imp.convertRow(row, i+1, cols, reporter))
	}

	imp.logger.Info("import complete", "path", path, "records", len(records), "issues", len(reporter.Issues()))
	return records, nil
}

// convertRow builds a record from one data row, defaulting any field it
// cannot parse and recording a coercion warning for each.
func (imp *Importer) convertRow(row []string, rowNum int, cols map[Field]int, reporter *report.Reporter) model.AccountRecord {
	rec := model.AccountRecord{
		Code:   cellAt(row, cols[FieldAccountNumber]),
		Budget: decimal.Zero,
		Actual: decimal.Zero,
	}

	if col, ok := cols[FieldName]; ok {
		rec.Description = cellAt(row, col)
	}

	if col, ok := cols[FieldType]; ok {
		text := cellAt(row, col)
		atype, matched := model.CoerceAccountType(text)
		rec.Type = atype
		if !matched && text != "" {
			reporter.Warnf(report.Issue{Kind: report.KindFieldCoercion, Code: rec.Code, Row: rowNum, Column: "Type"},
				"unknown account type %q: defaulting to %s", text, atype)
		}
	} else {
		rec.Type = model.AccountTypeAsset
	}

	if col, ok := cols[FieldFund]; ok {
		rec.Fund = cellAt(row, col)
	}

	if col, ok := cols[FieldFundClass]; ok {
		text := cellAt(row, col)
		ftype, matched := model.CoerceFundType(text)
		rec.FundClass = ftype
		if !matched && text != "" {
			reporter.Warnf(report.Issue{Kind: report.KindFieldCoercion, Code: rec.Code, Row: rowNum, Column: "Fund Class"},
				"unknown fund class %q: keeping as short code", text)
		}
	}

	rec.Budget = imp.parseAmount(row, rowNum, cols, FieldBudgetAmount, "Budget Amount", rec.Code, reporter)
	rec.Actual = imp.parseAmount(row, rowNum, cols, FieldActualAmount, "Actual Amount", rec.Code, reporter)
	return rec
}

func (imp *Importer) parseAmount(row []string, rowNum int, cols map[Field]int, field Field, label, code string, reporter *report.Reporter) decimal.Decimal {
	col, ok := cols[field]
	if !ok {
		return decimal.Zero
	}
	text := cellAt(row, col)
	if text == "" {
		return decimal.Zero
	}
	amount, err := parseMoney(text)
	if err != nil {
		reporter.Warnf(report.Issue{Kind: report.KindFieldCoercion, Code: code, Row: rowNum, Column: label},
			"unparseable amount %q: defaulting to 0", text)
		return decimal.Zero
	}
	return amount
}

// parseMoney accepts the usual spreadsheet decorations: currency symbol,
// thousands separators, and accounting-style parentheses for negatives.
func parseMoney(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
