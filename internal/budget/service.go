// Package budget is the facade over the reconciliation engine: import a
// workbook into a forest, aggregate it, export it, or load a stored
// fiscal period.
package budget

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/civicledger/munibudget/internal/aggregate"
	"github.com/civicledger/munibudget/internal/hierarchy"
	"github.com/civicledger/munibudget/internal/model"
	"github.com/civicledger/munibudget/internal/report"
	"github.com/civicledger/munibudget/internal/spreadsheet"
)

// Repository fetches flat account records for a fiscal period. Failures
// surface as repository errors, never engine errors.
type Repository interface {
	FetchAccounts(period string) ([]model.AccountRecord, error)
}

// Service wires the importer, hierarchy builder, aggregation engine, and
// exporter behind one surface. The engine is synchronous and operates on
// one forest at a time; serializing concurrent calls is the caller's
// job.
type Service struct {
	repo     Repository
	logger   *log.Logger
	importer *spreadsheet.Importer
	exporter *spreadsheet.Exporter
}

// NewService creates a Service. org labels exported workbooks; a nil
// logger disables diagnostics.
func NewService(repo Repository, logger *log.Logger, org string) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		repo:     repo,
		logger:   logger,
		importer: spreadsheet.NewImporter(logger),
		exporter: spreadsheet.NewExporter(logger, org),
	}
}

// ImportBudget reads a workbook and assembles the forest. Recoverable
// row/field problems land in the returned reporter; only file-level
// failures (missing file, bad format, no header row) return an error.
func (s *Service) ImportBudget(path string) (*hierarchy.Forest, *report.Reporter, error) {
	reporter := report.New(s.logger)
	records, err := s.importer.Import(path, reporter)
	if err != nil {
		return nil, reporter, err
	}
	forest := hierarchy.Build(records, reporter)
	return forest, reporter, nil
}

// ExportBudget writes the forest to a styled workbook at path.
func (s *Service) ExportBudget(forest *hierarchy.Forest, path, fiscalYearLabel string) error {
	return s.exporter.Export(forest, path, fiscalYearLabel)
}

// Aggregate computes rollups, variances, and fund distribution.
func (s *Service) Aggregate(forest *hierarchy.Forest, mode aggregate.RollupMode) *aggregate.Summary {
	return aggregate.Aggregate(forest, mode)
}

// LoadPeriod fetches a stored fiscal period from the repository and
// assembles its forest.
func (s *Service) LoadPeriod(period string) (*hierarchy.Forest, *report.Reporter, error) {
	records, err := s.repo.FetchAccounts(period)
	if err != nil {
		return nil, nil, err
	}
	reporter := report.New(s.logger)
	forest := hierarchy.Build(records, reporter)
	return forest, reporter, nil
}
