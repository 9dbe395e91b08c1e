package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"anovakit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Data     DataConfig
	Explore  ExploreConfig
	Report   ReportConfig
	LogLevel string
}

// AnalysisConfig holds hypothesis test and battery settings
type AnalysisConfig struct {
	Confidence float64
	Workers    int
	RunTimeout time.Duration // 0 disables the battery deadline
}

// DataConfig holds data file settings
type DataConfig struct {
	File  string
	Sheet string
}

// ExploreConfig holds plot-data settings
type ExploreConfig struct {
	Bins     int
	DotScale float64
}

// ReportConfig holds output settings
type ReportConfig struct {
	Format string // markdown or html
}

// Report formats
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Analysis: *loadAnalysisConfig(),
		Data:     *loadDataConfig(),
		Explore:  *loadExploreConfig(),
		Report:   *loadReportConfig(),
		LogLevel: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Confidence: getEnvFloatOrDefault("ANOVAKIT_CONFIDENCE", 0.95),
		Workers:    getEnvIntOrDefault("ANOVAKIT_WORKERS", 4),
		RunTimeout: getEnvDurationOrDefault("ANOVAKIT_RUN_TIMEOUT", 0),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:  getEnvOrDefault("ANOVAKIT_DATA_FILE", ""),
		Sheet: getEnvOrDefault("ANOVAKIT_SHEET", "Sheet1"),
	}
}

func loadExploreConfig() *ExploreConfig {
	return &ExploreConfig{
		Bins:     getEnvIntOrDefault("ANOVAKIT_BINS", 10),
		DotScale: getEnvFloatOrDefault("ANOVAKIT_DOT_SCALE", 0.1),
	}
}

func loadReportConfig() *ReportConfig {
	return &ReportConfig{
		Format: strings.ToLower(getEnvOrDefault("ANOVAKIT_REPORT_FORMAT", FormatMarkdown)),
	}
}

func validateConfig(config *Config) error {
	if c := config.Analysis.Confidence; !(c > 0 && c < 1) {
		return errors.ConfigInvalid(fmt.Sprintf("ANOVAKIT_CONFIDENCE must be in (0, 1), got %v", c))
	}
	if config.Analysis.Workers < 1 {
		return errors.ConfigInvalid("ANOVAKIT_WORKERS must be at least 1")
	}
	if config.Analysis.RunTimeout < 0 {
		return errors.ConfigInvalid("ANOVAKIT_RUN_TIMEOUT cannot be negative")
	}
	if config.Explore.Bins < 1 {
		return errors.ConfigInvalid("ANOVAKIT_BINS must be at least 1")
	}
	if !(config.Explore.DotScale > 0) {
		return errors.ConfigInvalid("ANOVAKIT_DOT_SCALE must be positive")
	}
	switch config.Report.Format {
	case FormatMarkdown, FormatHTML:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("ANOVAKIT_REPORT_FORMAT must be markdown or html, got %q", config.Report.Format))
	}
	switch config.LogLevel {
	case "ERROR", "WARN", "INFO", "DEBUG", "TRACE":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("LOG_LEVEL %q is not a known level", config.LogLevel))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
