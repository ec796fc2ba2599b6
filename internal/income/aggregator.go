// Package income derives daily income figures from a transaction snapshot.
//
// Three figures are exposed: total income, cash income and bank income. Each one is taken
// from the precomputed daily summary when the caller says a valid summary exists, and is
// otherwise folded over the snapshot. The fold never fails on bad data: missing amounts
// count as zero, malformed payment lists contribute nothing to the cash/bank split and
// unknown channels are left out of the split while still counting towards the total.
// Undecodable entries of an otherwise valid payment list are dropped one by one.
//
// A record with no or an unknown payment status is split by its account as if completed.
// Legacy stores only split records explicitly marked completed; treating the status the
// same way in the total and the split keeps cash plus bank equal to the total.
package income

import (
	"context"

	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SummarySource reads income figures out of a precomputed daily summary.
type SummarySource interface {
	TotalIncome(summary models.DailySummary) decimal.Decimal
	CashIncome(summary models.DailySummary) decimal.Decimal
	BankIncome(summary models.DailySummary) decimal.Decimal
}

// Inputs is everything a computation depends on.
// Transactions must not be modified while a computation is running.
type Inputs struct {
	Transactions    []models.Transaction
	HasDailySummary bool
	DailySummary    models.DailySummary
}

// Figure names one of the derived income figures
type Figure string

const (
	FigureTotal Figure = "total"
	FigureCash  Figure = "cash"
	FigureBank  Figure = "bank"
)

// Figures lists every figure in display order
var Figures = []Figure{FigureTotal, FigureCash, FigureBank}

// Source tells where a set of figures came from
type Source string

const (
	SourceDailySummary Source = "daily_summary"
	SourceTransactions Source = "transactions"
)

// Totals groups the three figures of one computation
type Totals struct {
	Total            decimal.Decimal `json:"total" yaml:"total"`
	Cash             decimal.Decimal `json:"cash" yaml:"cash"`
	Bank             decimal.Decimal `json:"bank" yaml:"bank"`
	Source           Source          `json:"source" yaml:"source"`
	TransactionCount int             `json:"transaction_count" yaml:"transaction_count"`
}

// Aggregator computes income figures. It holds no state between calls.
type Aggregator struct {
	summaries SummarySource
	logger    logging.Logger
}

// NewAggregator creates an Aggregator reading precomputed figures from summaries.
// A nil summaries disables the fast path.
func NewAggregator(summaries SummarySource, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{
		summaries: summaries,
		logger:    logger,
	}
}

// Source reports which path a computation over in takes
func (a *Aggregator) Source(in Inputs) Source {
	if in.HasDailySummary && a.summaries != nil {
		return SourceDailySummary
	}
	return SourceTransactions
}

// TotalIncome returns the income actually received, excluding adjustments
func (a *Aggregator) TotalIncome(in Inputs) decimal.Decimal {
	return a.Figure(FigureTotal, in)
}

// CashIncome returns the income received in cash, excluding adjustments and opening adjustments
func (a *Aggregator) CashIncome(in Inputs) decimal.Decimal {
	return a.Figure(FigureCash, in)
}

// BankIncome returns the income received through bank or digital wallets,
// excluding adjustments and opening adjustments
func (a *Aggregator) BankIncome(in Inputs) decimal.Decimal {
	return a.Figure(FigureBank, in)
}

// Figure computes a single figure
func (a *Aggregator) Figure(f Figure, in Inputs) decimal.Decimal {
	if in.HasDailySummary {
		if a.summaries != nil {
			return a.fromSummary(f, in.DailySummary)
		}
		a.logger.Warn("Daily summary flagged as available but no summary source is configured",
			logging.Field{Key: logging.FieldFigure, Value: string(f)})
	}

	switch f {
	case FigureTotal:
		return foldTotal(in.Transactions)
	case FigureCash:
		return foldChannel(in.Transactions, ChannelCash)
	case FigureBank:
		return foldChannel(in.Transactions, ChannelBank)
	default:
		a.logger.Warn("Unknown income figure requested", logging.Field{Key: logging.FieldFigure, Value: string(f)})
		return decimal.Zero
	}
}

func (a *Aggregator) fromSummary(f Figure, summary models.DailySummary) decimal.Decimal {
	switch f {
	case FigureTotal:
		return a.summaries.TotalIncome(summary)
	case FigureCash:
		return a.summaries.CashIncome(summary)
	case FigureBank:
		return a.summaries.BankIncome(summary)
	default:
		return decimal.Zero
	}
}

// Compute returns all three figures, evaluated concurrently.
// The figures only read the inputs, so no coordination between them is needed.
func (a *Aggregator) Compute(ctx context.Context, in Inputs) (Totals, error) {
	totals := Totals{
		Source:           a.Source(in),
		TransactionCount: len(in.Transactions),
	}

	g, ctx := errgroup.WithContext(ctx)
	targets := map[Figure]*decimal.Decimal{
		FigureTotal: &totals.Total,
		FigureCash:  &totals.Cash,
		FigureBank:  &totals.Bank,
	}
	for f, dst := range targets {
		f, dst := f, dst
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*dst = a.Figure(f, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Totals{}, err
	}

	a.logger.Debug("Computed income figures",
		logging.Field{Key: logging.FieldSource, Value: string(totals.Source)},
		logging.Field{Key: logging.FieldCount, Value: totals.TransactionCount},
		logging.Field{Key: "total", Value: totals.Total.String()},
		logging.Field{Key: "cash", Value: totals.Cash.String()},
		logging.Field{Key: "bank", Value: totals.Bank.String()})

	return totals, nil
}

// foldTotal sums received income (adjustments excluded) and standalone payments at face value.
func foldTotal(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			if tx.IsAdjustment() {
				continue
			}
			total = models.AddMoney(total, ReceivedAmount(tx))
		case tx.IsPayment():
			total = models.AddMoney(total, tx.AmountOrZero())
		}
	}
	return total
}

// foldChannel sums what was received through channel c.
// Income records contribute through their settlement; payment records through their account.
func foldChannel(txs []models.Transaction, c Channel) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			if tx.IsAdjustment() || tx.IsOpeningAdjustment() {
				continue
			}
			total = models.AddMoney(total, channelShare(tx.Settlement(), c))
		case tx.IsPayment():
			if Classify(tx.Account) == c {
				total = models.AddMoney(total, tx.AmountOrZero())
			}
		}
	}
	return total
}

// channelShare returns the part of a settlement received through channel c.
// A partial settlement without an itemized payment list has no known split and yields zero.
func channelShare(s models.Settlement, c Channel) decimal.Decimal {
	switch s := s.(type) {
	case models.MultiChannel:
		share := decimal.Zero
		if !s.Itemized {
			return share
		}
		for _, p := range s.Payments {
			if Classify(p.Method) == c {
				share = models.AddMoney(share, models.OrZero(p.Amount))
			}
		}
		return share
	case models.SingleChannel:
		if Classify(s.Account) == c {
			return s.Amount
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
