// Package audit reports data-quality gaps in a transaction snapshot.
//
// Findings explain why the cash/bank split may not add up to the total. They never
// change the figures themselves.
package audit

import (
	"fmt"

	"fjacquet/income-recon/internal/income"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"

	"github.com/shopspring/decimal"
)

// Kind identifies a class of finding
type Kind string

const (
	KindPartialWithoutPayments  Kind = "partial_without_payments"
	KindPaymentsExceedTotalPaid Kind = "payments_exceed_total_paid"
	KindPaymentsBelowTotalPaid  Kind = "payments_below_total_paid"
	KindUndecodablePayment      Kind = "undecodable_payment"
	KindUnknownChannel          Kind = "unknown_channel"
	KindUnknownPaymentStatus    Kind = "unknown_payment_status"
)

// Finding is one data-quality issue on one transaction
type Finding struct {
	TransactionID string           `json:"transaction_id" yaml:"transaction_id"`
	Kind          Kind             `json:"kind" yaml:"kind"`
	Details       string           `json:"details" yaml:"details"`
	Expected      *decimal.Decimal `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual        *decimal.Decimal `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// Report is the result of auditing one snapshot
type Report struct {
	TransactionCount int       `json:"transaction_count" yaml:"transaction_count"`
	Findings         []Finding `json:"findings" yaml:"findings"`
}

// Count returns the number of findings of kind k
func (r Report) Count(k Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Clean reports whether the snapshot produced no findings
func (r Report) Clean() bool {
	return len(r.Findings) == 0
}

// Auditor inspects snapshots for gaps between the total and the cash/bank split.
type Auditor struct {
	logger logging.Logger
}

// NewAuditor creates an Auditor
func NewAuditor(logger logging.Logger) *Auditor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Auditor{
		logger: logger.WithField("component", "Auditor"),
	}
}

// Audit inspects every transaction of txs. The slice is only read.
func (a *Auditor) Audit(txs []models.Transaction) Report {
	report := Report{TransactionCount: len(txs), Findings: []Finding{}}
	for _, tx := range txs {
		report.Findings = append(report.Findings, a.inspect(tx)...)
	}

	for _, f := range report.Findings {
		a.logger.Debug("Audit finding",
			logging.F(logging.FieldTransactionID, f.TransactionID),
			logging.F(logging.FieldFinding, string(f.Kind)),
			logging.F(logging.FieldReason, f.Details))
	}
	a.logger.Info("Audited transaction snapshot",
		logging.F(logging.FieldCount, len(txs)),
		logging.F("findings", len(report.Findings)))
	return report
}

func (a *Auditor) inspect(tx models.Transaction) []Finding {
	var findings []Finding

	if tx.IsIncome() && tx.PaymentStatus != "" && !tx.PaymentStatus.IsKnown() {
		findings = append(findings, Finding{
			TransactionID: tx.ID,
			Kind:          KindUnknownPaymentStatus,
			Details:       fmt.Sprintf("payment status '%s' is treated as completed", tx.PaymentStatus),
		})
	}

	switch {
	case tx.IsPayment():
		if income.Classify(tx.Account) == income.ChannelOther {
			findings = append(findings, unknownChannel(tx, tx.Account, tx.AmountOrZero()))
		}
	case tx.IsIncome() && !tx.IsAdjustment() && !tx.IsOpeningAdjustment():
		findings = append(findings, inspectSettlement(tx)...)
	}
	return findings
}

func inspectSettlement(tx models.Transaction) []Finding {
	switch s := tx.Settlement().(type) {
	case models.SingleChannel:
		if income.Classify(s.Account) == income.ChannelOther {
			return []Finding{unknownChannel(tx, s.Account, s.Amount)}
		}
	case models.MultiChannel:
		if !s.Itemized {
			paid := s.TotalPaid
			return []Finding{{
				TransactionID: tx.ID,
				Kind:          KindPartialWithoutPayments,
				Details:       "partial payment has no usable payments list; it is missing from the cash/bank split",
				Expected:      &paid,
			}}
		}
		return inspectPayments(tx, s)
	}
	return nil
}

func inspectPayments(tx models.Transaction, s models.MultiChannel) []Finding {
	var findings []Finding

	if tx.Payments.Dropped > 0 {
		findings = append(findings, Finding{
			TransactionID: tx.ID,
			Kind:          KindUndecodablePayment,
			Details:       fmt.Sprintf("%d payment entries could not be decoded and were left out of the cash/bank split", tx.Payments.Dropped),
		})
	}

	paid := s.TotalPaid
	sum := s.PaymentsTotal()
	switch sum.Cmp(paid) {
	case 1:
		findings = append(findings, Finding{
			TransactionID: tx.ID,
			Kind:          KindPaymentsExceedTotalPaid,
			Details:       fmt.Sprintf("payments add up to %s but total paid is %s", sum, paid),
			Expected:      &paid,
			Actual:        &sum,
		})
	case -1:
		findings = append(findings, Finding{
			TransactionID: tx.ID,
			Kind:          KindPaymentsBelowTotalPaid,
			Details:       fmt.Sprintf("payments add up to %s but total paid is %s", sum, paid),
			Expected:      &paid,
			Actual:        &sum,
		})
	}

	for _, p := range s.Payments {
		if income.Classify(p.Method) == income.ChannelOther {
			findings = append(findings, unknownChannel(tx, p.Method, models.OrZero(p.Amount)))
		}
	}
	return findings
}

func unknownChannel(tx models.Transaction, method string, amount decimal.Decimal) Finding {
	return Finding{
		TransactionID: tx.ID,
		Kind:          KindUnknownChannel,
		Details:       fmt.Sprintf("method '%s' is neither cash nor bank; amount counts towards the total only", method),
		Actual:        &amount,
	}
}
