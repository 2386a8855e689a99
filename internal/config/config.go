// Package config provides configuration loading from environment variables.
// Commands use the loaded values as flag defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/usestring/emgcsv/pkg/csvio"
	"github.com/usestring/emgcsv/pkg/extract"
)

// Config holds configuration shared by both commands.
type Config struct {
	InputPath  string // EMG_INPUT_PATH, default ""
	OutputPath string // EMG_OUTPUT_PATH, default "output.txt"
	Threshold  int    // EMG_ROW_THRESHOLD, default 2112
	Encoding   string // EMG_INPUT_ENCODING, default "utf-8"

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "warn"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		InputPath:  getEnvString("EMG_INPUT_PATH", ""),
		OutputPath: getEnvString("EMG_OUTPUT_PATH", "output.txt"),
		Threshold:  getEnvInt("EMG_ROW_THRESHOLD", extract.DefaultThreshold),
		Encoding:   getEnvString("EMG_INPUT_ENCODING", string(csvio.UTF8)),

		LogLevel:      getEnvString("LOG_LEVEL", "warn"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Validation errors.
var (
	ErrMissingInput      = errors.New("input path is required")
	ErrMissingOutput     = errors.New("output path is required")
	ErrNegativeThreshold = errors.New("row threshold must not be negative")
)

// ValidateScan checks the fields the min/max scanner needs.
func (c *Config) ValidateScan() error {
	if c.InputPath == "" {
		return ErrMissingInput
	}
	if _, err := csvio.ParseEncoding(c.Encoding); err != nil {
		return err
	}
	return nil
}

// ValidateExtract checks the fields the range extractor needs.
func (c *Config) ValidateExtract() error {
	if err := c.ValidateScan(); err != nil {
		return err
	}
	if c.OutputPath == "" {
		return ErrMissingOutput
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeThreshold, c.Threshold)
	}
	return nil
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
