// =============================================================================
// Order Line Cleaner - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. YAML file (ordclean.yaml by default, optional)
//   3. Environment variables prefixed with ORDCLEAN_
//   4. Command line flags (applied by the cmd package)
//
// The field rules themselves are not configurable; only where files are read
// from and written to, and how they are encoded, can be changed.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. ORDCLEAN_OUTPUT_DIR.
const EnvPrefix = "ORDCLEAN"

// DefaultConfigFile is read when no --config flag is given. It may be absent.
const DefaultConfigFile = "ordclean.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// OutputDir is the directory where artifacts are written. It is created
	// if it does not exist.
	// Default: "output"
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`

	// Input controls how the source file is decoded.
	Input InputSettings `yaml:"input" envconfig:"INPUT"`

	// Artifacts names the files written to OutputDir.
	Artifacts ArtifactSettings `yaml:"artifacts" envconfig:"ARTIFACTS"`

	// Metrics controls the daily metrics artifact.
	Metrics MetricsSettings `yaml:"metrics" envconfig:"METRICS"`

	// Report controls the optional XLSX workbook.
	Report ReportSettings `yaml:"report" envconfig:"REPORT"`

	// Logging controls structured log output.
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputSettings contains settings for reading the source file.
type InputSettings struct {
	// Delimiter separates CSV fields. Use "tab" for tab-separated files.
	// Default: ","
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"required"`

	// Encoding is the character encoding of CSV input.
	// Valid values: "utf-8" ("utf8"), "iso-8859-1" ("latin1"),
	// "windows-1252" ("cp1252")
	// Default: "utf-8"
	Encoding string `yaml:"encoding" envconfig:"ENCODING" validate:"oneof=utf-8 utf8 iso-8859-1 latin1 windows-1252 cp1252"`

	// Sheet is the worksheet read from XLSX input. Empty selects the first.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// ArtifactSettings names the output files.
type ArtifactSettings struct {
	Discarded string `yaml:"discarded" envconfig:"DISCARDED" validate:"required,excludesall=/\\"`
	Stats     string `yaml:"stats" envconfig:"STATS" validate:"required,excludesall=/\\"`
	Metrics   string `yaml:"metrics" envconfig:"METRICS" validate:"required,excludesall=/\\"`
	Usable    string `yaml:"usable" envconfig:"USABLE" validate:"required,excludesall=/\\"`

	// WriteUsableRows also writes the usable rows to Usable.
	// Default: false
	WriteUsableRows bool `yaml:"write_usable_rows" envconfig:"WRITE_USABLE_ROWS"`
}

// MetricsSettings controls the daily metrics artifact.
type MetricsSettings struct {
	// IncludeDate adds a leading purchased_date column. The historical file
	// layout has no date column, so this is off by default.
	IncludeDate bool `yaml:"include_date" envconfig:"INCLUDE_DATE"`
}

// ReportSettings controls the XLSX workbook.
type ReportSettings struct {
	// XLSX enables the workbook.
	XLSX bool `yaml:"xlsx" envconfig:"XLSX"`

	// FileName is the workbook name inside OutputDir.
	// Default: "cleaning_report.xlsx"
	FileName string `yaml:"file_name" envconfig:"FILE_NAME" validate:"required,endswith=.xlsx"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`

	// Format is "text" or "json".
	// Default: "text"
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load builds the configuration from defaults, the YAML file at configPath and
// the environment.
//
// PARAMETERS:
//   - configPath: path to the YAML file.
//   - required: when false a missing file is not an error.
//
// RETURNS:
//   - The validated configuration.
//   - An error if the file cannot be parsed or a value is out of range.
func Load(configPath string, required bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Variables that are not set leave the file values alone.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	if cfg.Input.Delimiter == "" {
		cfg.Input.Delimiter = ","
	}
	if cfg.Input.Encoding == "" {
		cfg.Input.Encoding = "utf-8"
	}
	cfg.Input.Encoding = strings.ToLower(cfg.Input.Encoding)

	if cfg.Artifacts.Discarded == "" {
		cfg.Artifacts.Discarded = "discarded_rows.csv"
	}
	if cfg.Artifacts.Stats == "" {
		cfg.Artifacts.Stats = "processing_stats.json"
	}
	if cfg.Artifacts.Metrics == "" {
		cfg.Artifacts.Metrics = "monthly_metrics.csv"
	}
	if cfg.Artifacts.Usable == "" {
		cfg.Artifacts.Usable = "usable_rows.csv"
	}

	if cfg.Report.FileName == "" {
		cfg.Report.FileName = "cleaning_report.xlsx"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s: value %q fails %q", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return err
	}

	if _, err := c.Input.Comma(); err != nil {
		return err
	}

	return nil
}

// Comma returns the CSV field separator for the configured delimiter.
func (s InputSettings) Comma() (rune, error) {
	switch strings.ToLower(s.Delimiter) {
	case "\\t", "\t", "tab":
		return '\t', nil
	case "pipe":
		return '|', nil
	case "semicolon":
		return ';', nil
	case "comma":
		return ',', nil
	}

	r := []rune(s.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("input.delimiter: %q is not a single usable character", s.Delimiter)
	}
	return r[0], nil
}
