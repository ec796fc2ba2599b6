// Package summary reads income figures out of a precomputed daily summary document.
//
// The document is produced upstream (at end-of-day close) and is opaque to this module:
// values are looked up by dotted path and any missing or unreadable value reads as zero.
package summary

import (
	"encoding/json"
	"strings"

	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Document paths of the figures read by the adapter
const (
	PathTotalIncome = "totals.income"
	PathCashIncome  = "byAccount.cash.income"
	PathBankIncome  = "byAccount.bank.income"
)

// CriticalPaths must be present for a summary to be considered complete
var CriticalPaths = []string{
	"totals.income",
	"totals.expense",
	"totals.net",
	"byAccount.cash.income",
	"byAccount.cash.expense",
	"byAccount.bank.income",
	"byAccount.bank.expense",
	"balances.initial.cash",
	"balances.initial.bank",
	"balances.initial.total",
	"balances.expected.cash",
	"balances.expected.bank",
	"balances.actual.cash",
	"balances.actual.bank",
	"operational.result",
}

// Adapter exposes the income figures of a daily summary.
// It satisfies income.SummarySource.
type Adapter struct {
	logger logging.Logger
}

// NewAdapter creates a summary Adapter
func NewAdapter(logger logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Adapter{logger: logger}
}

// TotalIncome returns totals.income
func (a *Adapter) TotalIncome(doc models.DailySummary) decimal.Decimal {
	return a.Amount(doc, PathTotalIncome)
}

// CashIncome returns byAccount.cash.income
func (a *Adapter) CashIncome(doc models.DailySummary) decimal.Decimal {
	return a.Amount(doc, PathCashIncome)
}

// BankIncome returns byAccount.bank.income
func (a *Adapter) BankIncome(doc models.DailySummary) decimal.Decimal {
	return a.Amount(doc, PathBankIncome)
}

// Amount reads the amount at path, zero when the path is missing or not numeric
func (a *Adapter) Amount(doc models.DailySummary, path string) decimal.Decimal {
	v, ok := NestedValue(doc, path)
	if !ok || v == nil {
		return decimal.Zero
	}
	d, ok := toDecimal(v)
	if !ok {
		a.logger.Warn("Daily summary value is not numeric, reading as zero",
			logging.F("path", path),
			logging.F("value", v))
		return decimal.Zero
	}
	return d
}

// Validate reports every critical path missing from doc.
// It does not change what the accessors return.
func (a *Adapter) Validate(doc models.DailySummary) error {
	if len(doc) == 0 {
		return &parsererror.ValidationError{Reason: "empty document"}
	}

	var missing []string
	for _, path := range CriticalPaths {
		if _, ok := NestedValue(doc, path); !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		a.logger.Warn("Daily summary has an incomplete structure",
			logging.F(logging.FieldCount, len(missing)))
		return &parsererror.ValidationError{Reason: "missing critical paths", Missing: missing}
	}
	return nil
}

// NestedValue looks up a dotted path such as "balances.actual.cash".
func NestedValue(doc models.DailySummary, path string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(doc)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, m != nil
	case models.DailySummary:
		return map[string]interface{}(m), m != nil
	default:
		return nil, false
	}
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	default:
		return decimal.Zero, false
	}
}
