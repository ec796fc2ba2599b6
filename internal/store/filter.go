package store

import (
	"time"

	"fjacquet/income-recon/internal/dateutils"
	"fjacquet/income-recon/internal/models"
)

// FilterDay returns the transactions of one business day in loc.
// Transactions without a parseable createdAt are kept: they belong to whatever snapshot
// the caller handed over. The input slice is not modified.
func FilterDay(txs []models.Transaction, day time.Time, loc *time.Location) []models.Transaction {
	kept := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.CreatedAt == "" {
			kept = append(kept, tx)
			continue
		}
		created, err := dateutils.ParseTimestamp(tx.CreatedAt, loc)
		if err != nil || dateutils.InDay(created, day, loc) {
			kept = append(kept, tx)
		}
	}
	return kept
}
