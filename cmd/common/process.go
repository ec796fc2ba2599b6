// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fjacquet/income-recon/internal/dateutils"
	"fjacquet/income-recon/internal/fileutils"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/models"
	"fjacquet/income-recon/internal/store"
)

// ErrNoInput is returned when a command needs a snapshot and none was given
var ErrNoInput = errors.New("an input snapshot is required (--input)")

// SnapshotLoader loads transaction snapshots and daily summaries
type SnapshotLoader interface {
	LoadTransactions(ctx context.Context, path string) (*store.LoadResult, error)
	LoadSummary(path string) (models.DailySummary, error)
}

// SummaryValidator checks that a daily summary carries every critical figure
type SummaryValidator interface {
	Validate(doc models.DailySummary) error
}

// Options selects what PrepareInputs loads
type Options struct {
	Input         string
	Summary       string
	Day           string
	StrictSummary bool
	Location      *time.Location
}

// Prepared holds the loaded inputs of one reconciliation run
type Prepared struct {
	Transactions    []models.Transaction
	DailySummary    models.DailySummary
	HasDailySummary bool
	Day             string
	Skipped         int
}

// PrepareInputs loads the snapshot, cuts it to the requested day and loads the daily summary.
// An incomplete summary fails the run when StrictSummary is set; otherwise it is logged and
// ignored so the figures are folded over the snapshot.
func PrepareInputs(ctx context.Context, loader SnapshotLoader, validator SummaryValidator, opts Options, log logging.Logger) (*Prepared, error) {
	if opts.Input == "" {
		return nil, ErrNoInput
	}

	res, err := loader.LoadTransactions(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}
	prepared := &Prepared{
		Transactions: res.Transactions,
		Skipped:      len(res.Skipped),
	}

	if opts.Day != "" {
		day, err := dateutils.ParseDay(opts.Day, opts.Location)
		if err != nil {
			return nil, err
		}
		prepared.Transactions = store.FilterDay(res.Transactions, day, opts.Location)
		prepared.Day = dateutils.ToISODate(day)
		log.Debug("Filtered snapshot to business day",
			logging.F(logging.FieldDay, prepared.Day),
			logging.F(logging.FieldCount, len(prepared.Transactions)))
	}

	if opts.Summary == "" {
		return prepared, nil
	}

	doc, err := loader.LoadSummary(opts.Summary)
	if err != nil {
		return nil, fmt.Errorf("error loading daily summary: %w", err)
	}
	if err := validator.Validate(doc); err != nil {
		if opts.StrictSummary {
			return nil, fmt.Errorf("daily summary rejected: %w", err)
		}
		log.WithError(err).Warn("Daily summary is incomplete, computing figures from transactions",
			logging.F(logging.FieldFile, opts.Summary))
		return prepared, nil
	}

	prepared.DailySummary = doc
	prepared.HasDailySummary = true
	return prepared, nil
}

// WriteOutput writes data to outputFile, or to stdout when outputFile is empty
func WriteOutput(data []byte, outputFile string, log logging.Logger) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := fileutils.WriteFile(outputFile, data, 0600); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	log.Info("Report written", logging.F(logging.FieldFile, outputFile))
	return nil
}
