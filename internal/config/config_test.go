package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/emgcsv/pkg/csvio"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EMG_INPUT_PATH", "EMG_OUTPUT_PATH", "EMG_ROW_THRESHOLD", "EMG_INPUT_ENCODING",
		"LOG_LEVEL", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Empty(t, cfg.InputPath)
	assert.Equal(t, "output.txt", cfg.OutputPath)
	assert.Equal(t, 2112, cfg.Threshold)
	assert.Equal(t, string(csvio.UTF8), cfg.Encoding)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMG_INPUT_PATH", "/data/testing_emg.csv")
	t.Setenv("EMG_OUTPUT_PATH", "/tmp/out.txt")
	t.Setenv("EMG_ROW_THRESHOLD", "10")
	t.Setenv("EMG_INPUT_ENCODING", "latin1")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()
	assert.Equal(t, "/data/testing_emg.csv", cfg.InputPath)
	assert.Equal(t, "/tmp/out.txt", cfg.OutputPath)
	assert.Equal(t, 10, cfg.Threshold)
	assert.Equal(t, "latin1", cfg.Encoding)
	assert.False(t, cfg.LogCompress)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMG_ROW_THRESHOLD", "many")

	assert.Equal(t, 2112, Load().Threshold)
}

func TestValidateScan(t *testing.T) {
	cfg := &Config{Encoding: "utf-8"}
	assert.ErrorIs(t, cfg.ValidateScan(), ErrMissingInput)

	cfg.InputPath = "in.csv"
	require.NoError(t, cfg.ValidateScan())

	cfg.Encoding = "klingon"
	assert.ErrorIs(t, cfg.ValidateScan(), csvio.ErrUnknownEncoding)
}

func TestValidateExtract(t *testing.T) {
	cfg := &Config{InputPath: "in.csv", Encoding: "utf-8"}
	assert.ErrorIs(t, cfg.ValidateExtract(), ErrMissingOutput)

	cfg.OutputPath = "out.txt"
	require.NoError(t, cfg.ValidateExtract())

	cfg.Threshold = -1
	assert.ErrorIs(t, cfg.ValidateExtract(), ErrNegativeThreshold)
}
