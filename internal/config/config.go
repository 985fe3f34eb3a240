// Package config loads and validates tool configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reddy-gopal/question-extractor/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// Bounds for numeric settings.
const (
	MaxWorkers           = 64
	MaxMinQuestionLength = 10000
	MaxUnitLength        = 10 // unit abbreviations are short tokens
)

// Config holds all configuration for an extraction run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Extract ExtractConfig `yaml:"extract"`
	Sheets  SheetsConfig  `yaml:"sheets"`
}

// InputConfig defines the input source.
type InputConfig struct {
	Path string `yaml:"path"` // HTML file to read ("-" = stdin)
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path string `yaml:"path"` // JSON file to write ("-" = stdout)
}

// ExtractConfig tunes the extraction pipeline.
type ExtractConfig struct {
	Workers           int      `yaml:"workers"`           // 0 = derived from CPU count
	MinQuestionLength int      `yaml:"minQuestionLength"` // 0 = library default
	Units             []string `yaml:"units"`             // extra unit abbreviations exempt from subscripting
}

// SheetsConfig defines the optional Google Sheets upload.
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsFile string `yaml:"credentialsFile"` // service account JSON
	SpreadsheetID   string `yaml:"spreadsheetId"`
	Worksheet       string `yaml:"worksheet"` // created if missing
}

// Validate checks numeric bounds and required sheet fields.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Extract.Workers < 0 || c.Extract.Workers > MaxWorkers {
		return fmt.Errorf("%w: extract.workers must be between 0 and %d, got %d",
			ErrInvalidConfig, MaxWorkers, c.Extract.Workers)
	}
	if c.Extract.MinQuestionLength < 0 || c.Extract.MinQuestionLength > MaxMinQuestionLength {
		return fmt.Errorf("%w: extract.minQuestionLength must be between 0 and %d, got %d",
			ErrInvalidConfig, MaxMinQuestionLength, c.Extract.MinQuestionLength)
	}
	for i, unit := range c.Extract.Units {
		if unit == "" || len(unit) > MaxUnitLength {
			return fmt.Errorf("%w: extract.units[%d] must be 1-%d chars, got %q",
				ErrInvalidConfig, i, MaxUnitLength, unit)
		}
	}

	if c.Sheets.Enabled {
		if c.Sheets.CredentialsFile == "" {
			return fmt.Errorf("%w: sheets.credentialsFile required when sheets upload is enabled", ErrInvalidConfig)
		}
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("%w: sheets.spreadsheetId required when sheets upload is enabled", ErrInvalidConfig)
		}
		if c.Sheets.Worksheet == "" {
			return fmt.Errorf("%w: sheets.worksheet required when sheets upload is enabled", ErrInvalidConfig)
		}
	}

	return nil
}

// DefaultConfig returns a neutral configuration with the upload disabled.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Path: "-"},
		Output: OutputConfig{Path: "-"},
		Sheets: SheetsConfig{Enabled: false, Worksheet: "Questions"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/qextract/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "qextract", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
