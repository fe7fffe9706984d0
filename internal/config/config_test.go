package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/munibudget/internal/aggregate"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default("City of Example", "FY2026")
	cfg.Organization.State = "CO"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "City of Example", got.Organization.Name)
	assert.Equal(t, "CO", got.Organization.State)
	assert.Equal(t, "FY2026", got.Fiscal.YearLabel)
	assert.Equal(t, "leaf-only", got.Rollup.Mode)
}

func TestDefaultRollupMode(t *testing.T) {
	cfg := Default("City", "FY2026")
	mode, err := cfg.RollupMode()
	require.NoError(t, err)
	assert.Equal(t, aggregate.RollupLeafOnly, mode)
}

func TestRollupMode_Invalid(t *testing.T) {
	cfg := &Config{Rollup: RollupConfig{Mode: "both"}}
	_, err := cfg.RollupMode()
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}
