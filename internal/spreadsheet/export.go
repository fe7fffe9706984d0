package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/civicledger/munibudget/internal/hierarchy"
)

// Fixed layout rows. The blank row 5 separates metadata from the table,
// and the blank row after the data terminates a later re-import scan
// before the summary block.
const (
	titleRow     = 1
	generatedRow = 3
	fiscalRow    = 4
	headerRow    = 6
	firstDataRow = 7
)

const (
	currencyFormat = "$#,##0.00"
	percentFormat  = "0.00%"
)

var exportHeaders = []string{
	"Account Number", "Account Name", "Type", "Fund",
	"Budget Amount", "Actual Amount", "Variance", "% Variance",
}

// Exporter writes a forest to a styled single-sheet workbook.
type Exporter struct {
	logger *log.Logger
	org    string
	now    func() time.Time
}

// NewExporter creates an Exporter. org appears in the title row. A nil
// logger disables diagnostic output.
func NewExporter(logger *log.Logger, org string) *Exporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Exporter{logger: logger, org: org, now: time.Now}
}

type exportStyles struct {
	title    int
	meta     int
	header   int
	currency int
	percent  int

	// over/under variants repeat the base styles with a fill so whole
	// rows read as over- or under-budget at a glance.
	textOver      int
	textUnder     int
	currencyOver  int
	currencyUnder int
	percentOver   int
	percentUnder  int
}

// Export writes the forest in document order to path, one sheet named
// Budget_<fiscalYearLabel>. The workbook handle is released on every
// path.
func (e *Exporter) Export(forest *hierarchy.Forest, path, fiscalYearLabel string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Budget_" + fiscalYearLabel
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	styles, err := buildStyles(f)
	if err != nil {
		return fmt.Errorf("building styles: %w", err)
	}

	if err := e.writePreamble(f, sheet, fiscalYearLabel, styles); err != nil {
		return err
	}

	lastRow, err := e.writeRows(f, sheet, forest, styles)
	if err != nil {
		return err
	}

	if err := e.writeSummary(f, sheet, forest, lastRow+2, styles); err != nil {
		return err
	}

	// Cosmetic only, but keeps the output readable without resizing.
	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 36)
	_ = f.SetColWidth(sheet, "C", "D", 14)
	_ = f.SetColWidth(sheet, "E", "H", 16)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook %s: %w", path, err)
	}
	e.logger.Info("export complete", "path", path, "sheet", sheet, "rows", forest.Len())
	return nil
}

func buildStyles(f *excelize.File) (exportStyles, error) {
	var s exportStyles
	var err error

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	overFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}}
	underFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}}
	currency := currencyFormat
	percent := percentFormat

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.meta, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 10},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	}); err != nil {
		return s, err
	}
	if s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currency}); err != nil {
		return s, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percent}); err != nil {
		return s, err
	}
	if s.textOver, err = f.NewStyle(&excelize.Style{Fill: overFill}); err != nil {
		return s, err
	}
	if s.textUnder, err = f.NewStyle(&excelize.Style{Fill: underFill}); err != nil {
		return s, err
	}
	if s.currencyOver, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currency, Fill: overFill}); err != nil {
		return s, err
	}
	if s.currencyUnder, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currency, Fill: underFill}); err != nil {
		return s, err
	}
	if s.percentOver, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percent, Fill: overFill}); err != nil {
		return s, err
	}
	if s.percentUnder, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percent, Fill: underFill}); err != nil {
		return s, err
	}
	return s, nil
}

func (e *Exporter) writePreamble(f *excelize.File, sheet, fiscalYearLabel string, styles exportStyles) error {
	title := fmt.Sprintf("%s Budget - %s", e.org, fiscalYearLabel)
	if err := f.SetCellValue(sheet, cell("A", titleRow), title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if err := f.MergeCell(sheet, cell("A", titleRow), cell("H", titleRow)); err != nil {
		return fmt.Errorf("merging title: %w", err)
	}
	_ = f.SetCellStyle(sheet, cell("A", titleRow), cell("H", titleRow), styles.title)

	generated := fmt.Sprintf("Generated: %s", e.now().Format("2006-01-02 15:04:05"))
	if err := f.SetCellValue(sheet, cell("A", generatedRow), generated); err != nil {
		return fmt.Errorf("writing timestamp: %w", err)
	}
	_ = f.SetCellStyle(sheet, cell("A", generatedRow), cell("A", generatedRow), styles.meta)

	if err := f.SetCellValue(sheet, cell("A", fiscalRow), "Fiscal Year: "+fiscalYearLabel); err != nil {
		return fmt.Errorf("writing fiscal label: %w", err)
	}
	_ = f.SetCellStyle(sheet, cell("A", fiscalRow), cell("A", fiscalRow), styles.meta)

	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, cell(col, headerRow), h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}
	_ = f.SetCellStyle(sheet, cell("A", headerRow), cell("H", headerRow), styles.header)
	return nil
}

// writeRows emits one row per node in document order and returns the last
// row written.
func (e *Exporter) writeRows(f *excelize.File, sheet string, forest *hierarchy.Forest, styles exportStyles) (int, error) {
	row := firstDataRow
	for n := range forest.All() {
		rec := n.Record
		variance := rec.Variance()
		variancePct := decimal.Zero
		if !rec.Budget.IsZero() {
			variancePct = variance.DivRound(rec.Budget, 6)
		}

		values := []any{
			rec.Code,
			rec.Description,
			string(rec.Type),
			rec.Fund,
			rec.Budget.InexactFloat64(),
			rec.Actual.InexactFloat64(),
			variance.InexactFloat64(),
			variancePct.InexactFloat64(),
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetCellValue(sheet, cell(col, row), v); err != nil {
				return 0, fmt.Errorf("writing row %d: %w", row, err)
			}
		}

		// On-budget rows stay unfilled; style ID 0 is the default style.
		text, cur, pct := 0, styles.currency, styles.percent
		switch {
		case variance.IsPositive():
			text, cur, pct = styles.textOver, styles.currencyOver, styles.percentOver
		case variance.IsNegative():
			text, cur, pct = styles.textUnder, styles.currencyUnder, styles.percentUnder
		}
		if text != 0 {
			_ = f.SetCellStyle(sheet, cell("A", row), cell("D", row), text)
		}
		_ = f.SetCellStyle(sheet, cell("E", row), cell("G", row), cur)
		_ = f.SetCellStyle(sheet, cell("H", row), cell("H", row), pct)
		row++
	}
	return row - 1, nil
}

func (e *Exporter) writeSummary(f *excelize.File, sheet string, forest *hierarchy.Forest, startRow int, styles exportStyles) error {
	totalBudget := decimal.Zero
	totalActual := decimal.Zero
	for n := range forest.All() {
		totalBudget = totalBudget.Add(n.Record.Budget)
		totalActual = totalActual.Add(n.Record.Actual)
	}

	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total Budget", totalBudget},
		{"Total Actual", totalActual},
		{"Total Variance", totalActual.Sub(totalBudget)},
	}
	for i, line := range lines {
		row := startRow + i
		if err := f.SetCellValue(sheet, cell("A", row), line.label); err != nil {
			return fmt.Errorf("writing summary label: %w", err)
		}
		if err := f.SetCellValue(sheet, cell("B", row), line.value.InexactFloat64()); err != nil {
			return fmt.Errorf("writing summary value: %w", err)
		}
		_ = f.SetCellStyle(sheet, cell("B", row), cell("B", row), styles.currency)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
