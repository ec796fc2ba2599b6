// Package container provides dependency injection for the income-recon application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"fjacquet/income-recon/internal/audit"
	"fjacquet/income-recon/internal/balance"
	"fjacquet/income-recon/internal/config"
	"fjacquet/income-recon/internal/dateutils"
	"fjacquet/income-recon/internal/income"
	"fjacquet/income-recon/internal/logging"
	"fjacquet/income-recon/internal/report"
	"fjacquet/income-recon/internal/store"
	"fjacquet/income-recon/internal/summary"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	location  *time.Location
	loader    *store.Loader
	summaries *summary.Adapter
	agg       *income.Aggregator
	balance   *balance.Store
	auditor   *audit.Auditor
	reports   *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies.
// The logger is built from the log section of cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an externally created logger
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	loc, err := dateutils.LoadLocation(cfg.Day.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load business timezone: %w", err)
	}

	summaries := summary.NewAdapter(logger)
	agg := income.NewAggregator(summaries, logger)

	logger.Debug("Container initialized successfully",
		logging.F("timezone", loc.String()),
		logging.F("decimal_places", cfg.Money.DecimalPlaces),
		logging.F(logging.FieldDelimiter, string(cfg.DelimiterRune())))

	return &Container{
		logger:    logger,
		config:    cfg,
		location:  loc,
		loader:    store.NewLoader(logger, cfg.DelimiterRune()),
		summaries: summaries,
		agg:       agg,
		balance:   balance.NewStore(agg, logger),
		auditor:   audit.NewAuditor(logger),
		reports:   report.NewReportGenerator(logger, int32(cfg.Money.DecimalPlaces)),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLocation returns the business timezone
func (c *Container) GetLocation() *time.Location {
	return c.location
}

// GetLoader returns the snapshot and summary loader
func (c *Container) GetLoader() *store.Loader {
	return c.loader
}

// GetSummaryAdapter returns the daily summary adapter
func (c *Container) GetSummaryAdapter() *summary.Adapter {
	return c.summaries
}

// GetAggregator returns the income aggregator
func (c *Container) GetAggregator() *income.Aggregator {
	return c.agg
}

// GetBalanceStore returns the memoized host store of the income figures
func (c *Container) GetBalanceStore() *balance.Store {
	return c.balance
}

// GetAuditor returns the data-quality auditor
func (c *Container) GetAuditor() *audit.Auditor {
	return c.auditor
}

// GetReportGenerator returns the report generator
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	// Currently no resources need explicit cleanup
	c.logger.Debug("Container closed")
	return nil
}
