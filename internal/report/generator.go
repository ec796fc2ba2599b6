package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"fjacquet/income-recon/internal/audit"
	"fjacquet/income-recon/internal/income"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported report formats
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// IsSupportedFormat reports whether format can be rendered
func IsSupportedFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// incomeView is the serialized form of income.Totals, with amounts fixed to the configured places
type incomeView struct {
	Day              string `json:"day,omitempty" yaml:"day,omitempty"`
	Total            string `json:"total" yaml:"total"`
	Cash             string `json:"cash" yaml:"cash"`
	Bank             string `json:"bank" yaml:"bank"`
	Source           string `json:"source" yaml:"source"`
	TransactionCount int    `json:"transaction_count" yaml:"transaction_count"`
}

type findingView struct {
	TransactionID string `json:"transaction_id" yaml:"transaction_id"`
	Kind          string `json:"kind" yaml:"kind"`
	Details       string `json:"details" yaml:"details"`
	Expected      string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual        string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

type auditView struct {
	TransactionCount int           `json:"transaction_count" yaml:"transaction_count"`
	Findings         []findingView `json:"findings" yaml:"findings"`
}

// ReportGenerator renders income figures and audit reports in various formats.
type ReportGenerator struct {
	logger        logging.Logger
	decimalPlaces int32
}

// NewReportGenerator creates a ReportGenerator printing amounts with decimalPlaces digits.
func NewReportGenerator(logger logging.Logger, decimalPlaces int32) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if decimalPlaces < 0 {
		decimalPlaces = models.DefaultDecimalPlaces
	}
	return &ReportGenerator{
		logger:        logger.WithField("component", "ReportGenerator"),
		decimalPlaces: decimalPlaces,
	}
}

// GenerateReport renders the income figures of day in format (text, json or yaml).
// day may be empty when the snapshot was not cut to a single day.
func (g *ReportGenerator) GenerateReport(totals income.Totals, day, format string) ([]byte, error) {
	view := incomeView{
		Day:              day,
		Total:            models.FormatMoney(totals.Total, g.decimalPlaces),
		Cash:             models.FormatMoney(totals.Cash, g.decimalPlaces),
		Bank:             models.FormatMoney(totals.Bank, g.decimalPlaces),
		Source:           string(totals.Source),
		TransactionCount: totals.TransactionCount,
	}

	switch format {
	case FormatText:
		return g.incomeText(view), nil
	case FormatJSON:
		return g.marshalJSON(view)
	case FormatYAML:
		return g.marshalYAML(view)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateAuditReport renders an audit report in format (text, json or yaml).
func (g *ReportGenerator) GenerateAuditReport(report audit.Report, format string) ([]byte, error) {
	view := auditView{
		TransactionCount: report.TransactionCount,
		Findings:         make([]findingView, 0, len(report.Findings)),
	}
	for _, f := range report.Findings {
		fv := findingView{
			TransactionID: f.TransactionID,
			Kind:          string(f.Kind),
			Details:       f.Details,
		}
		if f.Expected != nil {
			fv.Expected = models.FormatMoney(*f.Expected, g.decimalPlaces)
		}
		if f.Actual != nil {
			fv.Actual = models.FormatMoney(*f.Actual, g.decimalPlaces)
		}
		view.Findings = append(view.Findings, fv)
	}

	switch format {
	case FormatText:
		return g.auditText(view), nil
	case FormatJSON:
		return g.marshalJSON(view)
	case FormatYAML:
		return g.marshalYAML(view)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) incomeText(v incomeView) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	if v.Day != "" {
		fmt.Fprintf(w, "Day\t%s\t\n", v.Day)
	}
	fmt.Fprintf(w, "Total income\t%s\t\n", v.Total)
	fmt.Fprintf(w, "Cash income\t%s\t\n", v.Cash)
	fmt.Fprintf(w, "Bank income\t%s\t\n", v.Bank)
	fmt.Fprintf(w, "Source\t%s\t\n", v.Source)
	fmt.Fprintf(w, "Transactions\t%d\t\n", v.TransactionCount)
	_ = w.Flush()
	return buf.Bytes()
}

func (g *ReportGenerator) auditText(v auditView) []byte {
	var buf bytes.Buffer
	if len(v.Findings) == 0 {
		fmt.Fprintf(&buf, "No findings in %d transactions\n", v.TransactionCount)
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "%d findings in %d transactions\n", len(v.Findings), v.TransactionCount)
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRANSACTION\tKIND\tEXPECTED\tACTUAL\tDETAILS")
	for _, f := range v.Findings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.TransactionID, f.Kind, dash(f.Expected), dash(f.Actual), f.Details)
	}
	_ = w.Flush()
	return buf.Bytes()
}

func (g *ReportGenerator) marshalJSON(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) marshalYAML(v interface{}) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
