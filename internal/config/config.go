// =============================================================================
// POS Billing - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values come from three
// layers, later layers winning:
//   1. Built-in defaults
//   2. The YAML file given by --config (optional; a missing file is fine)
//   3. POS_* environment variables
//
// Every path the application writes to is configured here and handed to the
// stores and exporters at construction time; nothing reads these values from
// globals.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Supported tax export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// DataDir is where tax reports and the bill journal are written.
	// Default: "./data"
	DataDir string `yaml:"data_dir" env:"POS_DATA_DIR"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file. The console belongs
	// to the operator, so logs never go to stdout.
	// Default: "./logs/pos.log"
	LogFile string `yaml:"log_file" env:"POS_LOG_FILE"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" env:"POS_LOG_LEVEL"`

	// =========================================================================
	// BILLING SETTINGS
	// =========================================================================

	// BillIDDateLayout is the Go time layout of the date prefix of every
	// bill id seed. The seed is this prefix followed by a per-session
	// counter starting at 1.
	// Default: "060102" (yymmdd)
	BillIDDateLayout string `yaml:"bill_id_date_layout" env:"POS_BILL_ID_DATE_LAYOUT"`

	// =========================================================================
	// FILE FORMAT SETTINGS
	// =========================================================================

	// CSVSettings controls how tables are encoded.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// TaxExport controls the tax report export.
	TaxExport TaxExportSettings `yaml:"tax_export"`

	// Journal controls the JSON bill journal.
	Journal JournalSettings `yaml:"journal"`

	// Receipts controls PDF receipts.
	Receipts ReceiptSettings `yaml:"receipts"`
}

// CSVSettings contains settings for reading and writing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter" env:"POS_CSV_DELIMITER"`
}

// TaxExportSettings contains settings for the tax report.
type TaxExportSettings struct {
	// FileNameFormat is the report's base file name.
	// Placeholders: {timestamp}, {date}, {time}, {uuid}
	// Default: "tax_report_{timestamp}"
	FileNameFormat string `yaml:"file_name_format" env:"POS_TAX_FILE_NAME_FORMAT"`

	// Formats lists the files written per export.
	// Valid values: "csv", "xlsx"
	// Default: ["csv"]
	Formats []string `yaml:"formats" env:"POS_TAX_FORMATS" envSeparator:","`
}

// JournalSettings contains settings for the append-only JSON bill journal.
type JournalSettings struct {
	// Enabled turns the journal on.
	// Default: false
	Enabled bool `yaml:"enabled" env:"POS_JOURNAL_ENABLED"`

	// FileName is the journal file inside DataDir.
	// Default: "bills.json"
	FileName string `yaml:"file_name" env:"POS_JOURNAL_FILE_NAME"`
}

// ReceiptSettings contains settings for PDF receipts.
type ReceiptSettings struct {
	// Enabled turns receipt generation on.
	// Default: false
	Enabled bool `yaml:"enabled" env:"POS_RECEIPTS_ENABLED"`

	// Dir is where receipts are written.
	// Default: "<data_dir>/receipts"
	Dir string `yaml:"dir" env:"POS_RECEIPTS_DIR"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration from a YAML file and the environment.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. A missing file is not
//     an error; defaults and environment variables are used instead.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	ApplyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	ApplyDefaults(&config)
	return &config
}

// ApplyDefaults sets default values for any unset configuration options.
func ApplyDefaults(config *MainConfig) {
	if config.DataDir == "" {
		config.DataDir = "./data"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/pos.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.BillIDDateLayout == "" {
		config.BillIDDateLayout = "060102"
	}
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.TaxExport.FileNameFormat == "" {
		config.TaxExport.FileNameFormat = "tax_report_{timestamp}"
	}
	if len(config.TaxExport.Formats) == 0 {
		config.TaxExport.Formats = []string{FormatCSV}
	}
	if config.Journal.FileName == "" {
		config.Journal.FileName = "bills.json"
	}
	if config.Receipts.Dir == "" {
		config.Receipts.Dir = filepath.Join(config.DataDir, "receipts")
	}
}

// Validate checks option values. Directories are not created here; the
// file manager does that when the session starts.
func Validate(config *MainConfig) error {
	for i, format := range config.TaxExport.Formats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format != FormatCSV && format != FormatXLSX {
			return fmt.Errorf("unsupported tax export format %q", config.TaxExport.Formats[i])
		}
		config.TaxExport.Formats[i] = format
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", config.LogLevel)
	}

	// The sample date has single-digit month, day and time fields. A layout
	// that formats to itself has no date fields; one whose output can start
	// with '0' yields bill ids that a numeric search can never match.
	sample := time.Date(2011, 2, 3, 4, 5, 6, 0, time.UTC)
	prefix := sample.Format(config.BillIDDateLayout)
	if prefix == config.BillIDDateLayout {
		return fmt.Errorf("bill_id_date_layout %q contains no date fields", config.BillIDDateLayout)
	}
	notDigit := func(r rune) bool { return r < '0' || r > '9' }
	if strings.IndexFunc(prefix, notDigit) >= 0 {
		return fmt.Errorf("bill_id_date_layout %q must produce digits only", config.BillIDDateLayout)
	}
	if strings.HasPrefix(prefix, "0") {
		return fmt.Errorf("bill_id_date_layout %q can start with a zero; lead with the year", config.BillIDDateLayout)
	}

	return nil
}
