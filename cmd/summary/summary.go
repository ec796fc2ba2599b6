// Package summary handles the daily summary validation command
package summary

import (
	"fmt"

	"fjacquet/income-recon/cmd/common"
	"fjacquet/income-recon/cmd/root"
	"fjacquet/income-recon/internal/container"
	"fjacquet/income-recon/internal/income"
	"fjacquet/income-recon/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Validate a daily summary and print its income figures",
	Long: `Validate a daily summary document and print the income figures it carries.
The summary is read from the argument or from --summary. The command fails when a
critical path such as totals.income or byAccount.cash.income is missing.`,
	Args: cobra.MaximumNArgs(1),
	Run:  summaryFunc,
}

func summaryFunc(cmd *cobra.Command, args []string) {
	path := root.SharedFlags.Summary
	if len(args) == 1 {
		path = args[0]
	}
	root.Log.Info("Summary command called", logging.F(logging.FieldFile, path))

	out, err := Generate(root.AppContainer, path, root.SharedFlags.Format)
	if err != nil {
		root.Log.WithError(err).Fatal("Daily summary is not usable")
		return
	}
	if err := common.WriteOutput(out, root.SharedFlags.Output, root.Log); err != nil {
		root.Log.WithError(err).Fatal("Error writing summary report")
	}
}

// Generate validates the daily summary at path and renders its figures in format.
// An empty format uses the configured report format.
func Generate(c *container.Container, path, format string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("a daily summary is required (--summary or argument)")
	}

	doc, err := c.GetLoader().LoadSummary(path)
	if err != nil {
		return nil, err
	}

	adapter := c.GetSummaryAdapter()
	if err := adapter.Validate(doc); err != nil {
		return nil, err
	}

	totals := income.Totals{
		Total:  adapter.TotalIncome(doc),
		Cash:   adapter.CashIncome(doc),
		Bank:   adapter.BankIncome(doc),
		Source: income.SourceDailySummary,
	}

	if format == "" {
		format = c.GetConfig().Report.Format
	}
	return c.GetReportGenerator().GenerateReport(totals, "", format)
}
