// Package balance holds the transaction snapshot and daily summary of the day being
// reconciled and serves its income figures through a memo.
package balance

import (
	"context"
	"sync"

	"fjacquet/income-recon/internal/income"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Store is the host store of the income figures.
// Every write stamps a new version so the memo recomputes on the next read.
type Store struct {
	aggregator *income.Aggregator
	memo       *income.Memo
	logger     logging.Logger

	mu              sync.RWMutex
	transactions    []models.Transaction
	snapshotVersion string
	summary         models.DailySummary
	hasSummary      bool
	summaryVersion  string
}

// NewStore creates an empty Store computing figures with aggregator
func NewStore(aggregator *income.Aggregator, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{
		aggregator:      aggregator,
		memo:            income.NewMemo(aggregator),
		logger:          logger,
		snapshotVersion: uuid.NewString(),
	}
}

// SetTransactions replaces the snapshot. The slice is copied.
func (s *Store) SetTransactions(txs []models.Transaction) {
	snapshot := make([]models.Transaction, len(txs))
	copy(snapshot, txs)

	s.mu.Lock()
	s.transactions = snapshot
	s.snapshotVersion = uuid.NewString()
	version := s.snapshotVersion
	s.mu.Unlock()
	s.memo.Invalidate()

	s.logger.Debug("Replaced transaction snapshot",
		logging.F(logging.FieldSnapshot, version),
		logging.F(logging.FieldCount, len(snapshot)))
}

// SetDailySummary installs a valid daily summary; figures are read from it from now on.
func (s *Store) SetDailySummary(doc models.DailySummary) {
	s.mu.Lock()
	s.summary = doc
	s.hasSummary = true
	s.summaryVersion = uuid.NewString()
	version := s.summaryVersion
	s.mu.Unlock()
	s.memo.Invalidate()

	s.logger.Debug("Installed daily summary", logging.F(logging.FieldSummary, version))
}

// ClearDailySummary drops the daily summary; figures fall back to the snapshot.
func (s *Store) ClearDailySummary() {
	s.mu.Lock()
	s.summary = nil
	s.hasSummary = false
	s.summaryVersion = ""
	s.mu.Unlock()
	s.memo.Invalidate()

	s.logger.Debug("Cleared daily summary")
}

// HasDailySummary reports whether a daily summary is installed
func (s *Store) HasDailySummary() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasSummary
}

// Transactions returns a copy of the current snapshot
func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// snapshot returns the current inputs and their key.
// The transaction slice is never written after SetTransactions, so it is shared as is.
func (s *Store) snapshot() (income.Key, income.Inputs) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := income.Key{
		SnapshotVersion: s.snapshotVersion,
		HasDailySummary: s.hasSummary,
		SummaryVersion:  s.summaryVersion,
	}
	in := income.Inputs{
		Transactions:    s.transactions,
		HasDailySummary: s.hasSummary,
		DailySummary:    s.summary,
	}
	return key, in
}

func (s *Store) figure(f income.Figure) decimal.Decimal {
	key, in := s.snapshot()
	return s.memo.Get(f, key, in)
}

// TotalIncome returns the total income of the current state
func (s *Store) TotalIncome() decimal.Decimal {
	return s.figure(income.FigureTotal)
}

// CashIncome returns the cash income of the current state
func (s *Store) CashIncome() decimal.Decimal {
	return s.figure(income.FigureCash)
}

// BankIncome returns the bank income of the current state
func (s *Store) BankIncome() decimal.Decimal {
	return s.figure(income.FigureBank)
}

// Totals returns the three figures of one consistent state, computing missing ones concurrently.
func (s *Store) Totals(ctx context.Context) (income.Totals, error) {
	key, in := s.snapshot()

	totals := income.Totals{
		Source:           s.aggregator.Source(in),
		TransactionCount: len(in.Transactions),
	}

	g, ctx := errgroup.WithContext(ctx)
	targets := []struct {
		f   income.Figure
		dst *decimal.Decimal
	}{
		{income.FigureTotal, &totals.Total},
		{income.FigureCash, &totals.Cash},
		{income.FigureBank, &totals.Bank},
	}
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*target.dst = s.memo.Get(target.f, key, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return income.Totals{}, err
	}
	return totals, nil
}

// Misses returns how many figures the memo had to compute
func (s *Store) Misses() int {
	return s.memo.Misses()
}
