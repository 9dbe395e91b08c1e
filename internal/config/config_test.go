package config

import (
	"testing"
	"time"

	"anovakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ANOVAKIT_CONFIDENCE", "ANOVAKIT_WORKERS", "ANOVAKIT_RUN_TIMEOUT",
		"ANOVAKIT_DATA_FILE", "ANOVAKIT_SHEET", "ANOVAKIT_BINS", "ANOVAKIT_DOT_SCALE",
		"ANOVAKIT_REPORT_FORMAT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Analysis.Confidence)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, time.Duration(0), cfg.Analysis.RunTimeout)
	assert.Equal(t, "Sheet1", cfg.Data.Sheet)
	assert.Empty(t, cfg.Data.File)
	assert.Equal(t, 10, cfg.Explore.Bins)
	assert.Equal(t, 0.1, cfg.Explore.DotScale)
	assert.Equal(t, FormatMarkdown, cfg.Report.Format)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANOVAKIT_CONFIDENCE", "0.99")
	t.Setenv("ANOVAKIT_WORKERS", "8")
	t.Setenv("ANOVAKIT_RUN_TIMEOUT", "30s")
	t.Setenv("ANOVAKIT_DATA_FILE", "yields.xlsx")
	t.Setenv("ANOVAKIT_REPORT_FORMAT", "HTML")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.99, cfg.Analysis.Confidence)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.Equal(t, 30*time.Second, cfg.Analysis.RunTimeout)
	assert.Equal(t, "yields.xlsx", cfg.Data.File)
	assert.Equal(t, FormatHTML, cfg.Report.Format)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ANOVAKIT_CONFIDENCE", "1.5"},
		{"ANOVAKIT_WORKERS", "0"},
		{"ANOVAKIT_RUN_TIMEOUT", "-1s"},
		{"ANOVAKIT_BINS", "-3"},
		{"ANOVAKIT_DOT_SCALE", "0"},
		{"ANOVAKIT_REPORT_FORMAT", "pdf"},
		{"LOG_LEVEL", "LOUD"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_UnparseableFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANOVAKIT_WORKERS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Analysis.Workers)
}
