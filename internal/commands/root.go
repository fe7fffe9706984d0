package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/civicledger/munibudget/internal/budget"
	"github.com/civicledger/munibudget/internal/buildinfo"
	"github.com/civicledger/munibudget/internal/config"
	"github.com/civicledger/munibudget/internal/repository"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "munibudget",
		Short:   "Municipal budget reconciliation and reporting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("dir", ".", "data directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}

// app bundles the collaborators every data-directory command needs.
type app struct {
	dir    string
	cfg    *config.Config
	logger *log.Logger
	store  *repository.Store
	svc    *budget.Service
}

// loadApp resolves the data directory, reads its config, and wires the
// service stack.
func loadApp(cmd *cobra.Command) (*app, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading %s (run init first?): %w", config.FileName, err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	store := repository.NewStore(absDir)
	svc := budget.NewService(store, logger, cfg.Organization.Name)

	return &app{dir: absDir, cfg: cfg, logger: logger, store: store, svc: svc}, nil
}
