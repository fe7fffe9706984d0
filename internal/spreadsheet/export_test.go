package spreadsheet

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/civicledger/munibudget/internal/hierarchy"
	"github.com/civicledger/munibudget/internal/model"
	"github.com/civicledger/munibudget/internal/report"
)

func buildForest(t *testing.T, recs []model.AccountRecord) *hierarchy.Forest {
	t.Helper()
	r := report.New(nil)
	f := hierarchy.Build(recs, r)
	require.True(t, r.Empty())
	return f
}

func sampleRecords() []model.AccountRecord {
	return []model.AccountRecord{
		{Code: "410", Description: "Public Works", Type: model.AccountTypeExpense, Fund: "101",
			Budget: decimal.NewFromInt(500000), Actual: decimal.NewFromInt(480000)},
		{Code: "410.1", Description: "Streets", Type: model.AccountTypeExpense, Fund: "101",
			Budget: decimal.NewFromInt(350000), Actual: decimal.NewFromInt(360000)},
		{Code: "410.2", Description: "Parks", Type: model.AccountTypeExpense, Fund: "101",
			Budget: decimal.NewFromInt(150000), Actual: decimal.NewFromInt(120000)},
		{Code: "500", Description: "Water Revenue", Type: model.AccountTypeRevenue, Fund: "201",
			Budget: decimal.NewFromInt(90000), Actual: decimal.NewFromInt(90000)},
	}
}

func TestExport_Layout(t *testing.T) {
	forest := buildForest(t, sampleRecords())
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := NewExporter(nil, "City of Example").Export(forest, path, "FY2025")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Budget_FY2025", f.GetSheetName(0))

	title, err := f.GetCellValue("Budget_FY2025", "A1")
	require.NoError(t, err)
	assert.Equal(t, "City of Example Budget - FY2025", title)

	generated, _ := f.GetCellValue("Budget_FY2025", "A3")
	assert.Contains(t, generated, "Generated:")

	fiscal, _ := f.GetCellValue("Budget_FY2025", "A4")
	assert.Equal(t, "Fiscal Year: FY2025", fiscal)

	header, _ := f.GetCellValue("Budget_FY2025", "A6")
	assert.Equal(t, "Account Number", header)
	last, _ := f.GetCellValue("Budget_FY2025", "H6")
	assert.Equal(t, "% Variance", last)

	firstCode, _ := f.GetCellValue("Budget_FY2025", "A7")
	assert.Equal(t, "410", firstCode)
}

func TestExport_DocumentOrderAndSummary(t *testing.T) {
	forest := buildForest(t, sampleRecords())
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, NewExporter(nil, "City of Example").Export(forest, path, "FY2025"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Budget_FY2025"
	var codes []string
	for row := 7; row <= 10; row++ {
		v, _ := f.GetCellValue(sheet, cell("A", row))
		codes = append(codes, v)
	}
	assert.Equal(t, []string{"410", "410.1", "410.2", "500"}, codes)

	// Row 11 is blank; summary block starts at row 12.
	sentinel, _ := f.GetCellValue(sheet, "A11")
	assert.Empty(t, sentinel)

	label, _ := f.GetCellValue(sheet, "A12")
	assert.Equal(t, "Total Budget", label)
	label, _ = f.GetCellValue(sheet, "A13")
	assert.Equal(t, "Total Actual", label)
	label, _ = f.GetCellValue(sheet, "A14")
	assert.Equal(t, "Total Variance", label)
}

func TestExport_ImportRoundTrip(t *testing.T) {
	original := sampleRecords()
	forest := buildForest(t, original)
	path := filepath.Join(t.TempDir(), "roundtrip.xlsx")

	require.NoError(t, NewExporter(nil, "City of Example").Export(forest, path, "FY2025"))

	r := report.New(nil)
	records, err := NewImporter(nil).Import(path, r)
	require.NoError(t, err)
	require.Len(t, records, len(original))
	assert.True(t, r.Empty(), "round trip should be clean: %v", r.Issues())

	reForest := hierarchy.Build(records, report.New(nil))
	require.Equal(t, forest.Len(), reForest.Len())

	for _, want := range original {
		got, ok := reForest.Lookup(want.Code)
		require.True(t, ok, "code %s survives", want.Code)
		assert.Equal(t, want.Description, got.Record.Description)
		assert.Equal(t, want.Type, got.Record.Type)
		assert.Equal(t, want.Fund, got.Record.Fund)
		assert.True(t, want.Budget.Equal(got.Record.Budget), "budget of %s: want %s got %s", want.Code, want.Budget, got.Record.Budget)
		assert.True(t, want.Actual.Equal(got.Record.Actual), "actual of %s: want %s got %s", want.Code, want.Actual, got.Record.Actual)
	}

	// Parent/child structure survives.
	root, ok := reForest.Lookup("410")
	require.True(t, ok)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "410.1", root.Children[0].Code.String())
	assert.Equal(t, "410.2", root.Children[1].Code.String())
}

func TestExport_WriteFailure(t *testing.T) {
	forest := buildForest(t, sampleRecords())
	// Directory path cannot be created as a file.
	err := NewExporter(nil, "City").Export(forest, t.TempDir(), "FY2025")
	assert.Error(t, err)
}
