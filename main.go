package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/income-recon/cmd/audit"
	"fjacquet/income-recon/cmd/income"
	"fjacquet/income-recon/cmd/root"
	"fjacquet/income-recon/cmd/summary"
	"fjacquet/income-recon/internal/config"
	"fjacquet/income-recon/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the bootstrap log level before any command logs
	logLevel := configureLogLevelDirectly()
	root.Log = logging.NewLogrusAdapter(logLevel.String(), os.Getenv("LOG_FORMAT"))

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(income.Cmd)
	root.Cmd.AddCommand(audit.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	if envFile := config.FindEnvFile(); envFile != "" {
		_ = godotenv.Load(envFile)
	}
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info" // Default log level
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		// Don't log here, just use default info level if we can't parse
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
