// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/income-recon/internal/config"
	"fjacquet/income-recon/internal/container"
	"fjacquet/income-recon/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	Summary      string
	Day          string
	Format       string
	ConfigFile   string
	LogLevel     string
	CSVDelimiter string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the dependencies wired from the loaded configuration
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "income-recon",
		Short: "A CLI tool to reconcile the daily income of a point of sale.",
		Long: `income-recon derives the day's total, cash and bank income from a transaction
snapshot, or reads them from the precomputed daily summary when one is available.
It also audits snapshots for gaps between the total and the cash/bank split.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to income-recon!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
		SilenceUsage: true,
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Transaction snapshot file or directory (.json, .yaml, .csv)")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default stdout)")
	flags.StringVarP(&SharedFlags.Summary, "summary", "s", "", "Daily summary file (.json, .yaml)")
	flags.StringVarP(&SharedFlags.Day, "day", "d", "", "Business day to keep from the snapshot (YYYY-MM-DD or today)")
	flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Report format: text, json or yaml")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.income-recon, .income-recon and .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override")
	flags.StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV delimiter override")
}

// Setup loads the environment and configuration, applies flag overrides and wires the container.
func Setup() error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFile(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	ApplyFlagOverrides(cfg, SharedFlags)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// ApplyFlagOverrides copies the flags that were set onto cfg. Flags take precedence over
// the config file and the environment.
func ApplyFlagOverrides(cfg *config.Config, flags CommonFlags) {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.Format != "" {
		cfg.Report.Format = flags.Format
	}
	if flags.CSVDelimiter != "" {
		cfg.CSV.Delimiter = flags.CSVDelimiter
	}
}

// ReportFormat returns the report format selected by flag or configuration
func ReportFormat() string {
	if SharedFlags.Format != "" {
		return SharedFlags.Format
	}
	if AppContainer != nil {
		return AppContainer.GetConfig().Report.Format
	}
	return "text"
}
