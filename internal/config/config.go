// Package config provides configuration management for the election
// results pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Source granularity values.
const (
	GranularityCounty   = "county"
	GranularityPrecinct = "precinct"
)

// Source CSV layouts.
const (
	// LayoutOpenElections is the OpenElections export schema:
	// county, office, [district], [party], [candidate], [precinct], votes.
	LayoutOpenElections = "openelections"
	// LayoutOfficial is the PA Department of State county-returns schema:
	// County Name, Office Name, Party Name, Candidate Name, Votes.
	LayoutOfficial = "official"
)

// Configuration validation errors.
var (
	ErrNoElections          = errors.New("at least one election is required")
	ErrElectionMissingYear  = errors.New("year is required")
	ErrElectionMissingFile  = errors.New("file is required")
	ErrInvalidGranularity   = errors.New("granularity must be 'county' or 'precinct'")
	ErrInvalidLayout        = errors.New("layout must be 'openelections' or 'official'")
	ErrElectionMissingRaces = errors.New("at least one race is required")
	ErrNoEnabledElections   = errors.New("at least one election must be enabled")
	ErrMissingInputPath     = errors.New("input.base_path is required")
	ErrMissingOutputPath    = errors.New("output.path is required")
	ErrInvalidParallelism   = errors.New("concurrency.max_parallel_files must be at least 1")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidMaxAttempts   = errors.New("fetch.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay  = errors.New("fetch.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoff       = errors.New("fetch.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout       = errors.New("fetch.retry.timeout_sec must be at least 1")
)

// Config is the complete pipeline configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Fetch    FetchConfig    `yaml:"fetch"`
}

// PipelineConfig contains the ETL run settings.
type PipelineConfig struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Elections   []ElectionConfig  `yaml:"elections"`
}

// ElectionConfig is one year profile: which file to read, how its rows are
// laid out, and which races to extract from it.
type ElectionConfig struct {
	Year        int      `yaml:"year"`
	File        string   `yaml:"file"`
	Granularity string   `yaml:"granularity"`
	Layout      string   `yaml:"layout"`
	Races       []string `yaml:"races"`
	Enabled     bool     `yaml:"enabled"`
}

// InputConfig locates the raw source files.
type InputConfig struct {
	BasePath string `yaml:"base_path"`
}

// OutputConfig defines where and how the dataset is published.
type OutputConfig struct {
	Path         string `yaml:"path"`
	PrettyPrint  bool   `yaml:"pretty_print"`
	CreateBackup bool   `yaml:"create_backup"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ConcurrencyConfig bounds parallel per-file processing. Year files are
// independent, so this is purely a throughput knob.
type ConcurrencyConfig struct {
	MaxParallelFiles int `yaml:"max_parallel_files"`
}

// FetchConfig configures the source downloader.
type FetchConfig struct {
	BaseURL      string      `yaml:"base_url"`
	BackupURLs   []string    `yaml:"backup_urls"`
	BufferSizeKb int         `yaml:"buffer_size_kb"`
	Retry        RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines retry behavior for source downloads.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// Load reads and validates configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pipeline.Logging.Level == "" {
		c.Pipeline.Logging.Level = "info"
	}

	if c.Pipeline.Concurrency.MaxParallelFiles == 0 {
		c.Pipeline.Concurrency.MaxParallelFiles = 1
	}

	if c.Fetch.Retry.MaxAttempts == 0 {
		c.Fetch.Retry = RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		}
	}

	if c.Fetch.BufferSizeKb == 0 {
		c.Fetch.BufferSizeKb = 131072
	}

	for i := range c.Pipeline.Elections {
		el := &c.Pipeline.Elections[i]
		if el.Granularity == "" {
			el.Granularity = GranularityCounty
		}

		if el.Layout == "" {
			el.Layout = LayoutOpenElections
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Pipeline.Elections) == 0 {
		return ErrNoElections
	}

	enabledCount := 0

	for i, el := range c.Pipeline.Elections {
		if el.Year == 0 {
			return fmt.Errorf("%w: elections[%d]", ErrElectionMissingYear, i)
		}

		if el.File == "" {
			return fmt.Errorf("%w: elections[%d]", ErrElectionMissingFile, i)
		}

		if el.Granularity != GranularityCounty && el.Granularity != GranularityPrecinct {
			return fmt.Errorf("%w: elections[%d]", ErrInvalidGranularity, i)
		}

		if el.Layout != LayoutOpenElections && el.Layout != LayoutOfficial {
			return fmt.Errorf("%w: elections[%d]", ErrInvalidLayout, i)
		}

		if len(el.Races) == 0 {
			return fmt.Errorf("%w: elections[%d]", ErrElectionMissingRaces, i)
		}

		if el.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledElections
	}

	if c.Pipeline.Input.BasePath == "" {
		return ErrMissingInputPath
	}

	if c.Pipeline.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Pipeline.Concurrency.MaxParallelFiles < 1 {
		return ErrInvalidParallelism
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Pipeline.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Fetch.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Fetch.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Fetch.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoff
	}

	if c.Fetch.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	return nil
}

// GetEnabledElections returns only enabled year profiles.
func (c *Config) GetEnabledElections() []ElectionConfig {
	var enabled []ElectionConfig

	for _, el := range c.Pipeline.Elections {
		if el.Enabled {
			enabled = append(enabled, el)
		}
	}

	return enabled
}

// SourcePath resolves an election's file against the input base path.
func (c *Config) SourcePath(el ElectionConfig) string {
	return filepath.Join(c.Pipeline.Input.BasePath, filepath.FromSlash(el.File))
}

// SourcePaths resolves every enabled election file.
func (c *Config) SourcePaths() []string {
	elections := c.GetEnabledElections()
	paths := make([]string, 0, len(elections))

	for _, el := range elections {
		paths = append(paths, c.SourcePath(el))
	}

	return paths
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Elections: %d, Input: %s, Output: %s}",
		len(c.Pipeline.Elections),
		c.Pipeline.Input.BasePath,
		c.Pipeline.Output.Path,
	)
}
