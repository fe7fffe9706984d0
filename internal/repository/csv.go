package repository

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/civicledger/munibudget/internal/model"
)

const (
	numFields    = 7
	colCode      = 0
	colDesc      = 1
	colType      = 2
	colFund      = 3
	colFundClass = 4
	colBudget    = 5
	colActual    = 6
)

var header = []string{"account_code", "description", "account_type", "fund", "fund_class", "budget_amount", "actual_amount"}

// ReadRecords reads an accounts.csv.
func ReadRecords(r io.Reader) ([]model.AccountRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	var records []model.AccountRecord
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes an accounts.csv.
func WriteRecords(w io.Writer, records []model.AccountRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts an AccountRecord to a CSV row.
func MarshalRecord(rec model.AccountRecord) []string {
	row := make([]string, numFields)
	row[colCode] = rec.Code
	row[colDesc] = rec.Description
	row[colType] = string(rec.Type)
	row[colFund] = rec.Fund
	row[colFundClass] = string(rec.FundClass)
	row[colBudget] = rec.Budget.StringFixed(2)
	row[colActual] = rec.Actual.StringFixed(2)
	return row
}

// UnmarshalRecord converts a CSV row to an AccountRecord.
func UnmarshalRecord(row []string) (model.AccountRecord, error) {
	if len(row) != numFields {
		return model.AccountRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	budget, err := decimal.NewFromString(row[colBudget])
	if err != nil {
		return model.AccountRecord{}, fmt.Errorf("parsing budget_amount %q: %w", row[colBudget], err)
	}
	actual, err := decimal.NewFromString(row[colActual])
	if err != nil {
		return model.AccountRecord{}, fmt.Errorf("parsing actual_amount %q: %w", row[colActual], err)
	}

	return model.AccountRecord{
		Code:        row[colCode],
		Description: row[colDesc],
		Type:        model.AccountType(row[colType]),
		Fund:        row[colFund],
		FundClass:   model.FundType(row[colFundClass]),
		Budget:      budget,
		Actual:      actual,
	}, nil
}
