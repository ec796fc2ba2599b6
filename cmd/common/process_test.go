package common_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/income-recon/cmd/common"
	"fjacquet/income-recon/internal/dateutils"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/parsererror"
	"fjacquet/income-recon/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLoader implements common.SnapshotLoader for testing
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) LoadTransactions(ctx context.Context, path string) (*store.LoadResult, error) {
	args := m.Called(ctx, path)
	res, _ := args.Get(0).(*store.LoadResult)
	return res, args.Error(1)
}

func (m *MockLoader) LoadSummary(path string) (models.DailySummary, error) {
	args := m.Called(path)
	doc, _ := args.Get(0).(models.DailySummary)
	return doc, args.Error(1)
}

// MockValidator implements common.SummaryValidator for testing
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(doc models.DailySummary) error {
	return m.Called(doc).Error(0)
}

var (
	_ common.SnapshotLoader   = (*MockLoader)(nil)
	_ common.SummaryValidator = (*MockValidator)(nil)
)

func snapshot() *store.LoadResult {
	return &store.LoadResult{
		Transactions: []models.Transaction{
			{ID: "a", Type: models.TypeIncome, Amount: models.Amount("10"), CreatedAt: "2025-03-10T09:00:00-05:00"},
			{ID: "b", Type: models.TypeIncome, Amount: models.Amount("20"), CreatedAt: "2025-03-11T09:00:00-05:00"},
		},
		Skipped: []*parsererror.ParseError{{Parser: "json", Index: 2}},
	}
}

func TestPrepareInputs_NoInput(t *testing.T) {
	_, err := common.PrepareInputs(context.Background(), &MockLoader{}, &MockValidator{}, common.Options{}, logging.NewMockLogger())
	assert.ErrorIs(t, err, common.ErrNoInput)
}

func TestPrepareInputs_SnapshotOnly(t *testing.T) {
	loader := &MockLoader{}
	loader.On("LoadTransactions", mock.Anything, "day.json").Return(snapshot(), nil)

	prepared, err := common.PrepareInputs(context.Background(), loader, &MockValidator{},
		common.Options{Input: "day.json"}, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Len(t, prepared.Transactions, 2)
	assert.Equal(t, 1, prepared.Skipped)
	assert.False(t, prepared.HasDailySummary)
	loader.AssertExpectations(t)
	loader.AssertNotCalled(t, "LoadSummary", mock.Anything)
}

func TestPrepareInputs_FiltersDay(t *testing.T) {
	loc, err := dateutils.LoadLocation("")
	require.NoError(t, err)
	loader := &MockLoader{}
	loader.On("LoadTransactions", mock.Anything, "day.json").Return(snapshot(), nil)

	prepared, err := common.PrepareInputs(context.Background(), loader, &MockValidator{},
		common.Options{Input: "day.json", Day: "2025-03-10", Location: loc}, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, prepared.Transactions, 1)
	assert.Equal(t, "a", prepared.Transactions[0].ID)
	assert.Equal(t, "2025-03-10", prepared.Day)

	_, err = common.PrepareInputs(context.Background(), loader, &MockValidator{},
		common.Options{Input: "day.json", Day: "10/03/2025", Location: loc}, logging.NewMockLogger())
	assert.Error(t, err)
}

func TestPrepareInputs_ValidSummary(t *testing.T) {
	doc := models.DailySummary{"totals": map[string]interface{}{"income": "5"}}
	loader := &MockLoader{}
	loader.On("LoadTransactions", mock.Anything, "day.json").Return(snapshot(), nil)
	loader.On("LoadSummary", "summary.json").Return(doc, nil)
	validator := &MockValidator{}
	validator.On("Validate", doc).Return(nil)

	prepared, err := common.PrepareInputs(context.Background(), loader, validator,
		common.Options{Input: "day.json", Summary: "summary.json"}, logging.NewMockLogger())
	require.NoError(t, err)
	assert.True(t, prepared.HasDailySummary)
	assert.Equal(t, doc, prepared.DailySummary)
	validator.AssertExpectations(t)
}

func TestPrepareInputs_IncompleteSummary(t *testing.T) {
	doc := models.DailySummary{"totals": map[string]interface{}{}}
	invalid := &parsererror.ValidationError{Reason: "missing critical paths", Missing: []string{"totals.income"}}

	newMocks := func() (*MockLoader, *MockValidator) {
		loader := &MockLoader{}
		loader.On("LoadTransactions", mock.Anything, "day.json").Return(snapshot(), nil)
		loader.On("LoadSummary", "summary.json").Return(doc, nil)
		validator := &MockValidator{}
		validator.On("Validate", doc).Return(invalid)
		return loader, validator
	}

	t.Run("lenient falls back to transactions", func(t *testing.T) {
		loader, validator := newMocks()
		logger := logging.NewMockLogger()
		prepared, err := common.PrepareInputs(context.Background(), loader, validator,
			common.Options{Input: "day.json", Summary: "summary.json"}, logger)
		require.NoError(t, err)
		assert.False(t, prepared.HasDailySummary)
		assert.Nil(t, prepared.DailySummary)
		assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
	})

	t.Run("strict rejects", func(t *testing.T) {
		loader, validator := newMocks()
		_, err := common.PrepareInputs(context.Background(), loader, validator,
			common.Options{Input: "day.json", Summary: "summary.json", StrictSummary: true}, logging.NewMockLogger())
		var vErr *parsererror.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"totals.income"}, vErr.Missing)
	})
}

func TestPrepareInputs_LoaderErrors(t *testing.T) {
	loader := &MockLoader{}
	loader.On("LoadTransactions", mock.Anything, "bad.xml").Return(nil, errors.New("boom"))
	_, err := common.PrepareInputs(context.Background(), loader, &MockValidator{},
		common.Options{Input: "bad.xml"}, logging.NewMockLogger())
	assert.ErrorContains(t, err, "error loading transactions")

	loader = &MockLoader{}
	loader.On("LoadTransactions", mock.Anything, "day.json").Return(snapshot(), nil)
	loader.On("LoadSummary", "missing.json").Return(nil, errors.New("not found"))
	_, err = common.PrepareInputs(context.Background(), loader, &MockValidator{},
		common.Options{Input: "day.json", Summary: "missing.json"}, logging.NewMockLogger())
	assert.ErrorContains(t, err, "error loading daily summary")
}

func TestWriteOutput_File(t *testing.T) {
	logger := logging.NewMockLogger()
	path := filepath.Join(t.TempDir(), "out", "report.txt")

	require.NoError(t, common.WriteOutput([]byte("hello\n"), path, logger))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.True(t, logger.HasEntry("INFO", "Report written"))
}
