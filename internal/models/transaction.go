package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is one financial event of a daily snapshot.
// Optional numeric fields are pointers; read them through OrZero.
type Transaction struct {
	ID            string           `json:"id,omitempty" yaml:"id,omitempty"`
	Type          TransactionType  `json:"type" yaml:"type"`
	Category      string           `json:"category,omitempty" yaml:"category,omitempty"`
	Subcategory   string           `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Account       string           `json:"account,omitempty" yaml:"account,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	PaymentStatus PaymentStatus    `json:"paymentStatus,omitempty" yaml:"paymentStatus,omitempty"`
	TotalPaid     *decimal.Decimal `json:"totalPaid,omitempty" yaml:"totalPaid,omitempty"`
	Payments      PaymentList      `json:"payments" yaml:"payments,omitempty"`
	CreatedAt     string           `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Payment is one itemized settlement against a transaction
type Payment struct {
	Method string           `json:"method" yaml:"method"`
	Amount *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// IsIncome returns true for revenue records
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsPayment returns true for standalone settlement records
func (t Transaction) IsPayment() bool {
	return t.Type == TypePayment
}

// IsAdjustment returns true when the category marks a balance adjustment
func (t Transaction) IsAdjustment() bool {
	return t.Category == CategoryAdjustment
}

// IsOpeningAdjustment returns true when the subcategory marks an opening correction
func (t Transaction) IsOpeningAdjustment() bool {
	return t.Subcategory == SubcategoryOpeningAdjustment
}

// AmountOrZero returns the nominal amount, zero when absent
func (t Transaction) AmountOrZero() decimal.Decimal {
	return OrZero(t.Amount)
}

// TotalPaidOrZero returns the collected amount, zero when absent
func (t Transaction) TotalPaidOrZero() decimal.Decimal {
	return OrZero(t.TotalPaid)
}

// Status returns the normalized payment status of the transaction
func (t Transaction) Status() PaymentStatus {
	return t.PaymentStatus.Normalize()
}

// Settlement returns how the transaction was settled, selected by its payment status.
func (t Transaction) Settlement() Settlement {
	switch t.Status() {
	case StatusPending:
		return Unsettled{}
	case StatusPartial:
		ms := MultiChannel{
			TotalPaid: t.TotalPaidOrZero(),
			Itemized:  t.Payments.Valid(),
		}
		if ms.Itemized {
			ms.Payments = t.Payments.Items
		}
		return ms
	default:
		return SingleChannel{
			Account: t.Account,
			Amount:  t.AmountOrZero(),
		}
	}
}

// Settlement is the tagged variant describing where the money of a transaction went.
// It is one of SingleChannel, MultiChannel or Unsettled.
type Settlement interface {
	settlement()
}

// SingleChannel is a fully collected transaction settled through its account
type SingleChannel struct {
	Account string
	Amount  decimal.Decimal
}

// MultiChannel is a partially collected transaction.
// Itemized is false when the payments list was missing or malformed; Payments is then empty.
type MultiChannel struct {
	TotalPaid decimal.Decimal
	Payments  []Payment
	Itemized  bool
}

// Unsettled is a transaction for which nothing has been collected yet
type Unsettled struct{}

func (SingleChannel) settlement() {}
func (MultiChannel) settlement()  {}
func (Unsettled) settlement()     {}

// PaymentsTotal sums the itemized payments
func (m MultiChannel) PaymentsTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(m.Payments))
	for _, p := range m.Payments {
		amounts = append(amounts, OrZero(p.Amount))
	}
	return SumMoney(amounts...)
}
