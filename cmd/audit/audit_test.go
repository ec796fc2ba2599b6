package audit_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/income-recon/cmd/audit"
	"fjacquet/income-recon/cmd/root"
	"fjacquet/income-recon/internal/config"
	"fjacquet/income-recon/internal/container"
	"fjacquet/income-recon/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotYAML = `
- id: clean
  type: income
  account: cash
  amount: 10
- id: gap
  type: income
  paymentStatus: partial
  totalPaid: 30
- id: card
  type: payment
  account: card
  amount: 5
`

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Money.DecimalPlaces = 2
	cfg.Day.Timezone = "America/Lima"
	cfg.Report.Format = "json"
	cfg.CSV.Delimiter = ","

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "day.yaml")
	require.NoError(t, os.WriteFile(path, []byte(snapshotYAML), 0600))
	return path
}

func TestAuditCommand_Metadata(t *testing.T) {
	assert.Equal(t, "audit", audit.Cmd.Use)
	assert.NotNil(t, audit.Cmd.Flags().Lookup("fail-on-findings"))
}

func TestGenerate(t *testing.T) {
	out, err := audit.Generate(context.Background(), newTestContainer(t), root.CommonFlags{Input: writeSnapshot(t)}, false)
	require.NoError(t, err)

	var report struct {
		TransactionCount int `json:"transaction_count"`
		Findings         []struct {
			TransactionID string `json:"transaction_id"`
			Kind          string `json:"kind"`
			Expected      string `json:"expected"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, 3, report.TransactionCount)
	require.Len(t, report.Findings, 2)
	assert.Equal(t, "gap", report.Findings[0].TransactionID)
	assert.Equal(t, "partial_without_payments", report.Findings[0].Kind)
	assert.Equal(t, "30.00", report.Findings[0].Expected)
	assert.Equal(t, "card", report.Findings[1].TransactionID)
	assert.Equal(t, "unknown_channel", report.Findings[1].Kind)
}

func TestGenerate_FailOnFindings(t *testing.T) {
	out, err := audit.Generate(context.Background(), newTestContainer(t), root.CommonFlags{Input: writeSnapshot(t), Format: "text"}, true)
	assert.ErrorIs(t, err, audit.ErrFindings)
	assert.Contains(t, string(out), "2 findings in 3 transactions")
}

func TestGenerate_NoInput(t *testing.T) {
	_, err := audit.Generate(context.Background(), newTestContainer(t), root.CommonFlags{}, false)
	assert.Error(t, err)
}
