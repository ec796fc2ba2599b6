// Package income handles the daily income command
package income

import (
	"context"

	"fjacquet/income-recon/cmd/common"
	"fjacquet/income-recon/cmd/root"
	"fjacquet/income-recon/internal/container"
	"fjacquet/income-recon/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the income command
var Cmd = &cobra.Command{
	Use:   "income",
	Short: "Compute the day's total, cash and bank income",
	Long: `Compute the day's total, cash and bank income.
When a complete daily summary is given with --summary its figures are reported as is;
otherwise the figures are folded over the transaction snapshot given with --input.`,
	Run: incomeFunc,
}

func incomeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Income command called",
		logging.F(logging.FieldFile, root.SharedFlags.Input),
		logging.F(logging.FieldSummaryFile, root.SharedFlags.Summary))

	out, err := Generate(cmd.Context(), root.AppContainer, root.SharedFlags)
	if err != nil {
		root.Log.WithError(err).Fatal("Error computing income figures")
		return
	}
	if err := common.WriteOutput(out, root.SharedFlags.Output, root.Log); err != nil {
		root.Log.WithError(err).Fatal("Error writing income report")
	}
}

// Generate loads the inputs selected by flags and renders the income figures
func Generate(ctx context.Context, c *container.Container, flags root.CommonFlags) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.GetConfig()

	prepared, err := common.PrepareInputs(ctx, c.GetLoader(), c.GetSummaryAdapter(), common.Options{
		Input:         flags.Input,
		Summary:       flags.Summary,
		Day:           flags.Day,
		StrictSummary: cfg.Summary.StrictValidation,
		Location:      c.GetLocation(),
	}, c.GetLogger())
	if err != nil {
		return nil, err
	}

	balance := c.GetBalanceStore()
	balance.SetTransactions(prepared.Transactions)
	if prepared.HasDailySummary {
		balance.SetDailySummary(prepared.DailySummary)
	} else {
		balance.ClearDailySummary()
	}

	totals, err := balance.Totals(ctx)
	if err != nil {
		return nil, err
	}

	format := flags.Format
	if format == "" {
		format = cfg.Report.Format
	}
	return c.GetReportGenerator().GenerateReport(totals, prepared.Day, format)
}
