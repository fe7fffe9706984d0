package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/civicledger/munibudget/internal/auditlog"
	"github.com/civicledger/munibudget/internal/repository"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "munibudget-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "munibudget")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/munibudget")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func writeBudgetWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Account Number", "Name", "Type", "Fund", "Budget", "Actual"},
		{"410", "Public Works", "Expense", "101", 500000, 480000},
		{"410.1", "Streets", "Expense", "101", 350000, 360000},
		{"410.2", "Parks", "Expense", "101", 150000, 120000},
	}
	for r, row := range rows {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, v))
		}
	}

	path := filepath.Join(dir, "adopted.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "init", dir, "--name", "City of Example", "--fiscal-year", "FY2026")
	require.NoError(t, err, out)

	for _, d := range []string{"periods", "exports", "logs"} {
		info, statErr := os.Stat(filepath.Join(dir, d))
		require.NoError(t, statErr, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	_, err = os.Stat(filepath.Join(dir, "munibudget.yaml"))
	require.NoError(t, err)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir())
	assert.Error(t, err)
}

func TestImportExportSummaryFlow(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "init", dir, "--name", "City of Example", "--fiscal-year", "FY2026")
	require.NoError(t, err, out)

	workbook := writeBudgetWorkbook(t, t.TempDir())

	out, err = runCLI(t, "import", workbook, "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 3 accounts")

	// Import persisted the period to the repository.
	store := repository.NewStore(dir)
	records, err := store.FetchAccounts("FY2026")
	require.NoError(t, err)
	require.Len(t, records, 3)

	out, err = runCLI(t, "export", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exported 3 accounts")

	exported := filepath.Join(dir, "exports", "budget-FY2026.xlsx")
	_, err = os.Stat(exported)
	require.NoError(t, err)

	out, err = runCLI(t, "summary", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "leaf-only rollup")
	assert.Contains(t, out, "410")
	assert.Contains(t, out, "Fund distribution")

	out, err = runCLI(t, "summary", "--dir", dir, "--mode", "additive")
	require.NoError(t, err, out)
	assert.Contains(t, out, "additive rollup")

	// Both operations landed in the audit trail.
	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "import", entries[0].Action)
	assert.Equal(t, "export", entries[1].Action)
}

func TestImport_WithoutInitFails(t *testing.T) {
	dir := t.TempDir()
	workbook := writeBudgetWorkbook(t, t.TempDir())

	out, err := runCLI(t, "import", workbook, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "munibudget.yaml")
}

func TestExport_EmptyPeriodFails(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "init", dir, "--name", "City", "--fiscal-year", "FY2026")
	require.NoError(t, err, out)

	out, err = runCLI(t, "export", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "no accounts stored")
}
