package income

import (
	"fjacquet/income-recon/internal/models"

	"github.com/shopspring/decimal"
)

// ReceivedAmount returns how much has actually been collected for a transaction,
// as opposed to its invoiced amount.
//
// Non-income records are returned at face value. For income records:
//   - partial: totalPaid
//   - pending: zero
//   - completed, unset or unknown status: amount
func ReceivedAmount(tx models.Transaction) decimal.Decimal {
	if !tx.IsIncome() {
		return tx.AmountOrZero()
	}

	switch s := tx.Settlement().(type) {
	case models.MultiChannel:
		return s.TotalPaid
	case models.Unsettled:
		return decimal.Zero
	case models.SingleChannel:
		return s.Amount
	default:
		return tx.AmountOrZero()
	}
}
