package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	// Clear any existing environment variables
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test default values
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 2, config.Money.DecimalPlaces)
	assert.Equal(t, "America/Lima", config.Day.Timezone)
	assert.False(t, config.Summary.StrictValidation)
	assert.Equal(t, "text", config.Report.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.DelimiterRune())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"INCOME_LOG_LEVEL":                 "debug",
		"INCOME_LOG_FORMAT":                "json",
		"INCOME_MONEY_DECIMAL_PLACES":      "3",
		"INCOME_DAY_TIMEZONE":              "UTC",
		"INCOME_SUMMARY_STRICT_VALIDATION": "true",
		"INCOME_REPORT_FORMAT":             "yaml",
		"INCOME_CSV_DELIMITER":             ";",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 3, config.Money.DecimalPlaces)
	assert.Equal(t, "UTC", config.Day.Timezone)
	assert.True(t, config.Summary.StrictValidation)
	assert.Equal(t, "yaml", config.Report.Format)
	assert.Equal(t, ';', config.DelimiterRune())
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
  format: "json"
money:
  decimal_places: 4
day:
  timezone: "Europe/Zurich"
report:
  format: "json"
csv:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 4, config.Money.DecimalPlaces)
	assert.Equal(t, "Europe/Zurich", config.Day.Timezone)
	assert.Equal(t, "json", config.Report.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
money:
  decimal_places: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))

	// Environment variables override the config file
	t.Setenv("INCOME_LOG_LEVEL", "error")
	t.Setenv("INCOME_MONEY_DECIMAL_PLACES", "1")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)     // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter)     // config file value
	assert.Equal(t, 1, config.Money.DecimalPlaces) // env var wins
}

func TestInitializeConfigFile_Explicit(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  format: yaml\n"), 0600))

	config, err := InitializeConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Report.Format)

	_, err = InitializeConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "negative decimal places",
			modifyConfig: func(c *Config) { c.Money.DecimalPlaces = -1 },
			expectError:  "money.decimal_places must be between 0 and 8",
		},
		{
			name:         "unknown timezone",
			modifyConfig: func(c *Config) { c.Day.Timezone = "Mars/Olympus" },
			expectError:  "invalid day.timezone",
		},
		{
			name:         "invalid report format",
			modifyConfig: func(c *Config) { c.Report.Format = "xml" },
			expectError:  "invalid report format",
		},
		{
			name:         "invalid CSV delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "CSV delimiter must be a single character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := validConfig()
	logger := ConfigureLoggingFromConfig(config)
	assert.NotNil(t, logger)
	assert.Equal(t, "info", logger.GetLevel().String())

	config.Log.Level = "debug"
	config.Log.Format = "json"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "debug", logger.GetLevel().String())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("INCOME_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("INCOME_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("INCOME_TEST_UNSET_VALUE", "fallback"))
}

func TestFindEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	assert.Equal(t, "", FindEnvFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0600))
	assert.Equal(t, ".env", FindEnvFile())
}

func validConfig() *Config {
	config := &Config{}
	config.Log.Level = "info"
	config.Log.Format = "text"
	config.Money.DecimalPlaces = 2
	config.Day.Timezone = "America/Lima"
	config.Report.Format = "text"
	config.CSV.Delimiter = ","
	return config
}

// chdirTemp moves the test into an empty directory so no stray config.yaml is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	t.Setenv("HOME", tempDir)
	return tempDir
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"INCOME_LOG_LEVEL",
		"INCOME_LOG_FORMAT",
		"INCOME_MONEY_DECIMAL_PLACES",
		"INCOME_DAY_TIMEZONE",
		"INCOME_SUMMARY_STRICT_VALIDATION",
		"INCOME_REPORT_FORMAT",
		"INCOME_CSV_DELIMITER",
	}

	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			// Log warning but continue - this is test cleanup
			fmt.Printf("Warning: failed to unset environment variable %s: %v\n", envVar, err)
		}
	}
}
