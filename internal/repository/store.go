// Package repository persists flat account records as CSV files keyed by
// fiscal period, e.g. <root>/periods/FY2025/accounts.csv. The engine only
// sees the FetchAccounts surface; everything else is plumbing.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/civicledger/munibudget/internal/model"
)

// Error wraps a storage failure with operation and period context, so
// callers can distinguish repository failures from engine errors.
type Error struct {
	Op     string
	Period string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("repository %s (period %s): %v", e.Op, e.Period, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Store is a period-keyed CSV account store rooted at a data directory.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// FetchAccounts returns all records for a fiscal period. A period with no
// saved file yields an empty slice, not an error.
func (s *Store) FetchAccounts(period string) ([]model.AccountRecord, error) {
	path := s.periodPath(period)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Op: "fetch", Period: period, Err: err}
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, &Error{Op: "fetch", Period: period, Err: err}
	}
	return records, nil
}

// SaveAccounts replaces the stored records for a fiscal period.
func (s *Store) SaveAccounts(period string, records []model.AccountRecord) error {
	path := s.periodPath(period)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Op: "save", Period: period, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &Error{Op: "save", Period: period, Err: err}
	}
	defer f.Close()

	if err := WriteRecords(f, records); err != nil {
		return &Error{Op: "save", Period: period, Err: err}
	}
	return nil
}

// Periods lists the fiscal periods with saved data, sorted.
func (s *Store) Periods() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "periods"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Op: "list", Period: "", Err: err}
	}

	var periods []string
	for _, e := range entries {
		if e.IsDir() {
			periods = append(periods, e.Name())
		}
	}
	sort.Strings(periods)
	return periods, nil
}

func (s *Store) periodPath(period string) string {
	return filepath.Join(s.root, "periods", period, "accounts.csv")
}
