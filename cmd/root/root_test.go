package root_test

import (
	"os"
	"testing"

	"fjacquet/income-recon/cmd/root"
	"fjacquet/income-recon/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "income-recon", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "reconcile the daily income")
	assert.Contains(t, root.Cmd.Long, "total, cash and bank income")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"summary", "s"},
		{"day", "d"},
		{"format", "f"},
		{"config", ""},
		{"log-level", ""},
		{"csv-delimiter", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Report.Format = "text"
	cfg.CSV.Delimiter = ","

	root.ApplyFlagOverrides(cfg, root.CommonFlags{})
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Report.Format)

	root.ApplyFlagOverrides(cfg, root.CommonFlags{LogLevel: "debug", Format: "json", CSVDelimiter: ";"})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	t.Setenv("HOME", dir)
	t.Setenv("INCOME_REPORT_FORMAT", "yaml")

	require.NoError(t, root.Setup())
	require.NotNil(t, root.AppContainer)
	assert.Equal(t, "yaml", root.AppContainer.GetConfig().Report.Format)
	assert.Equal(t, "yaml", root.ReportFormat())
	assert.Same(t, root.AppContainer.GetLogger(), root.Log)
}
