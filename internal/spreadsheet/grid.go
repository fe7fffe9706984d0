package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// HeaderNotFoundError means no cell in the scan window identified a
// header row; without one no column mapping is possible.
type HeaderNotFoundError struct {
	Path string
}

func (e HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: no header row found in first %d rows/columns", e.Path, headerScanWindow)
}

// UnsupportedFormatError means the file extension is not an importable
// spreadsheet format.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported spreadsheet format %q (want .xlsx or .xls)", e.Path, e.Ext)
}

// readGrid normalizes a workbook's first sheet to a [][]string grid so
// the importer can treat .xlsx and legacy .xls identically.
func readGrid(path string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return readXLSXGrid(path)
	case ".xls":
		return readXLSGrid(path)
	default:
		return nil, UnsupportedFormatError{Path: path, Ext: ext}
	}
}

func readXLSXGrid(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

func readXLSGrid(path string) ([][]string, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("reading first sheet of %s: %w", path, err)
	}

	var grid [][]string
	for i := 0; i <= int(sheet.GetNumberRows()); i++ {
		row, err := sheet.GetRow(i)
		if err != nil || row == nil {
			grid = append(grid, nil)
			continue
		}
		var cells []string
		for _, col := range row.GetCols() {
			if col != nil {
				cells = append(cells, col.GetString())
			} else {
				cells = append(cells, "")
			}
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// cellAt returns the trimmed cell value, or "" when the ragged grid has
// no such cell.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
