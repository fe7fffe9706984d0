package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/civicledger/munibudget/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string
	var yearLabel string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budget data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, yearLabel)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "organization name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&yearLabel, "fiscal-year", "FY2026", "fiscal year label")

	return cmd
}

func runInit(dir, name, yearLabel string) error {
	dirs := []string{
		"periods",
		"exports",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, yearLabel)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized budget data directory at %s for %s (%s)\n", dir, name, yearLabel)
	return nil
}
