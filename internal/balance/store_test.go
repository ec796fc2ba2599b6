package balance

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"fjacquet/income-recon/internal/income"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	logger := logging.NewMockLogger()
	return NewStore(income.NewAggregator(summary.NewAdapter(logger), logger), logger)
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "1", Type: models.TypeIncome, Account: models.AccountCash, PaymentStatus: models.StatusCompleted, Amount: models.Amount("50")},
		{ID: "2", Type: models.TypePayment, Account: models.AccountYape, Amount: models.Amount("75")},
	}
}

func sampleSummary() models.DailySummary {
	return models.DailySummary{
		"totals": map[string]interface{}{"income": json.Number("1000.00")},
		"byAccount": map[string]interface{}{
			"cash": map[string]interface{}{"income": json.Number("400")},
			"bank": map[string]interface{}{"income": json.Number("600")},
		},
	}
}

func TestStore_EmptyStoreIsZero(t *testing.T) {
	store := newTestStore()
	assert.True(t, store.TotalIncome().IsZero())
	assert.True(t, store.CashIncome().IsZero())
	assert.True(t, store.BankIncome().IsZero())
	assert.False(t, store.HasDailySummary())
}

func TestStore_FallbackFigures(t *testing.T) {
	store := newTestStore()
	store.SetTransactions(sampleTransactions())

	assert.Equal(t, "125", store.TotalIncome().String())
	assert.Equal(t, "50", store.CashIncome().String())
	assert.Equal(t, "75", store.BankIncome().String())
}

func TestStore_CachesUntilWrite(t *testing.T) {
	store := newTestStore()
	store.SetTransactions(sampleTransactions())

	store.TotalIncome()
	store.TotalIncome()
	assert.Equal(t, 1, store.Misses())

	store.SetTransactions(sampleTransactions()[:1])
	assert.Equal(t, "50", store.TotalIncome().String())
	assert.Equal(t, 2, store.Misses())
}

func TestStore_ClearDailySummaryDropsCachedFigures(t *testing.T) {
	store := newTestStore()
	store.SetTransactions(sampleTransactions())

	store.TotalIncome()
	store.ClearDailySummary()
	store.TotalIncome()
	assert.Equal(t, 2, store.Misses())
}

func TestStore_SetTransactionsCopiesInput(t *testing.T) {
	store := newTestStore()
	txs := sampleTransactions()
	store.SetTransactions(txs)

	txs[0].Amount = models.Amount("9999")
	assert.Equal(t, "125", store.TotalIncome().String())
	assert.Len(t, store.Transactions(), 2)
}

func TestStore_SummaryTakesPrecedence(t *testing.T) {
	store := newTestStore()
	store.SetTransactions(sampleTransactions())
	assert.Equal(t, "125", store.TotalIncome().String())

	store.SetDailySummary(sampleSummary())
	assert.True(t, store.HasDailySummary())
	assert.Equal(t, "1000", store.TotalIncome().String())
	assert.Equal(t, "400", store.CashIncome().String())
	assert.Equal(t, "600", store.BankIncome().String())

	store.ClearDailySummary()
	assert.False(t, store.HasDailySummary())
	assert.Equal(t, "125", store.TotalIncome().String())
}

func TestStore_Totals(t *testing.T) {
	store := newTestStore()
	store.SetTransactions(sampleTransactions())

	totals, err := store.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "125", totals.Total.String())
	assert.Equal(t, "50", totals.Cash.String())
	assert.Equal(t, "75", totals.Bank.String())
	assert.Equal(t, income.SourceTransactions, totals.Source)
	assert.Equal(t, 2, totals.TransactionCount)

	store.SetDailySummary(sampleSummary())
	totals, err = store.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, income.SourceDailySummary, totals.Source)
	assert.Equal(t, "1000", totals.Total.String())
}

func TestStore_TotalsCancelled(t *testing.T) {
	store := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Totals(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	store := newTestStore()
	store.SetTransactions(sampleTransactions())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.SetTransactions(sampleTransactions())
		}()
		go func() {
			defer wg.Done()
			// Every snapshot written here has the same figures
			assert.Equal(t, "125", store.TotalIncome().String())
		}()
	}
	wg.Wait()
}
