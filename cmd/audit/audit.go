// Package audit handles the snapshot audit command
package audit

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/income-recon/cmd/common"
	"fjacquet/income-recon/cmd/root"
	"fjacquet/income-recon/internal/container"
	"fjacquet/income-recon/internal/logging"

	"github.com/spf13/cobra"
)

// ErrFindings is returned by Generate when findings exist and FailOnFindings is set
var ErrFindings = errors.New("audit reported findings")

// FailOnFindings makes the command exit with an error when the audit is not clean
var FailOnFindings bool

// Cmd represents the audit command
var Cmd = &cobra.Command{
	Use:   "audit",
	Short: "Report data-quality gaps in a transaction snapshot",
	Long: `Report data-quality gaps in a transaction snapshot: partial payments without a
usable payments list, payments that do not add up to the amount paid, unknown payment
methods and unknown payment statuses. Findings never change the income figures.`,
	Run: auditFunc,
}

func init() {
	Cmd.Flags().BoolVar(&FailOnFindings, "fail-on-findings", false, "Exit with an error when the audit reports findings")
}

func auditFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Audit command called", logging.F(logging.FieldFile, root.SharedFlags.Input))

	out, err := Generate(cmd.Context(), root.AppContainer, root.SharedFlags, FailOnFindings)
	if out != nil {
		if werr := common.WriteOutput(out, root.SharedFlags.Output, root.Log); werr != nil {
			root.Log.WithError(werr).Fatal("Error writing audit report")
			return
		}
	}
	if err != nil {
		root.Log.WithError(err).Fatal("Audit failed")
	}
}

// Generate audits the snapshot selected by flags and renders the report.
// With failOnFindings the rendered report is returned together with ErrFindings.
func Generate(ctx context.Context, c *container.Container, flags root.CommonFlags, failOnFindings bool) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	prepared, err := common.PrepareInputs(ctx, c.GetLoader(), c.GetSummaryAdapter(), common.Options{
		Input:    flags.Input,
		Day:      flags.Day,
		Location: c.GetLocation(),
	}, c.GetLogger())
	if err != nil {
		return nil, err
	}

	report := c.GetAuditor().Audit(prepared.Transactions)

	format := flags.Format
	if format == "" {
		format = c.GetConfig().Report.Format
	}
	out, err := c.GetReportGenerator().GenerateAuditReport(report, format)
	if err != nil {
		return nil, err
	}

	if failOnFindings && !report.Clean() {
		return out, fmt.Errorf("%w: %d findings", ErrFindings, len(report.Findings))
	}
	return out, nil
}
