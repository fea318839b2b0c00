// Package config provides centralized configuration management for the
// evaluator. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

// Config holds all evaluator configuration.
// All settings can be configured via environment variables.
type Config struct {
	Files   FilesConfig
	Rules   RulesConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// FilesConfig holds the reference dataset file paths.
// The submission file itself is passed on the command line, not configured.
type FilesConfig struct {
	// Pullsheet is the path to the pullsheet file (default: pullsheet.csv)
	Pullsheet string `env:"PULLSHEET_FILE" default:"pullsheet.csv"`

	// PullOrder is the path to the pull order file (default: pullorder.csv)
	PullOrder string `env:"PULLORDER_FILE" default:"pullorder.csv"`

	// Catalog is the path to the catalog file (default: catalog.csv)
	Catalog string `env:"CATALOG_FILE" default:"catalog.csv"`
}

// RulesConfig holds the acceptance rule settings.
//
// The ACV threshold applied to a submission depends on its match rate: a
// submission whose match rate reaches MatchRatePivot percent gets the lower
// threshold, everything else the upper. ACV values are decimal strings so
// dollar amounts round-trip exactly.
type RulesConfig struct {
	// ACVUpper is the ACV threshold for low-match submissions (default: 3.00)
	ACVUpper string `env:"RULES_ACV_UPPER" default:"3.00"`

	// ACVLower is the ACV threshold for high-match submissions (default: 2.00)
	ACVLower string `env:"RULES_ACV_LOWER" default:"2.00"`

	// MatchRatePivot is the match rate percentage at or above which the
	// lower threshold applies (default: 51)
	MatchRatePivot int `env:"RULES_MATCH_RATE_PIVOT" default:"51"`
}

// OutputConfig holds evaluation output settings.
type OutputConfig struct {
	// Dir is the directory for generated files (default: output)
	Dir string `env:"OUTPUT_DIR" default:"output"`

	// ReportFile is the evaluation report file name (default: report.csv)
	ReportFile string `env:"OUTPUT_REPORT_FILE" default:"report.csv"`

	// SkippedFile is the skipped-rows file name (default: skipped_rows.csv)
	SkippedFile string `env:"OUTPUT_SKIPPED_FILE" default:"skipped_rows.csv"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
