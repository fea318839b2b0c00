package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		value := os.Getenv(envName)

		// Apply default if not set
		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Files validation
	if c.Files.Pullsheet == "" {
		errs = append(errs, "PULLSHEET_FILE must not be empty")
	}
	if c.Files.PullOrder == "" {
		errs = append(errs, "PULLORDER_FILE must not be empty")
	}
	if c.Files.Catalog == "" {
		errs = append(errs, "CATALOG_FILE must not be empty")
	}

	// Rules validation
	upper, upperErr := decimal.NewFromString(c.Rules.ACVUpper)
	if upperErr != nil {
		errs = append(errs, fmt.Sprintf("RULES_ACV_UPPER (%q) must be a decimal number", c.Rules.ACVUpper))
	}
	lower, lowerErr := decimal.NewFromString(c.Rules.ACVLower)
	if lowerErr != nil {
		errs = append(errs, fmt.Sprintf("RULES_ACV_LOWER (%q) must be a decimal number", c.Rules.ACVLower))
	}
	if upperErr == nil && upper.IsNegative() {
		errs = append(errs, "RULES_ACV_UPPER must be non-negative")
	}
	if lowerErr == nil && lower.IsNegative() {
		errs = append(errs, "RULES_ACV_LOWER must be non-negative")
	}
	if upperErr == nil && lowerErr == nil && lower.GreaterThan(upper) {
		errs = append(errs, fmt.Sprintf("RULES_ACV_LOWER (%s) must not exceed RULES_ACV_UPPER (%s)",
			c.Rules.ACVLower, c.Rules.ACVUpper))
	}
	if c.Rules.MatchRatePivot < 0 || c.Rules.MatchRatePivot > 100 {
		errs = append(errs, fmt.Sprintf("RULES_MATCH_RATE_PIVOT (%d) must be 0-100", c.Rules.MatchRatePivot))
	}

	// Output validation
	if c.Output.Dir == "" {
		errs = append(errs, "OUTPUT_DIR must not be empty")
	}
	if c.Output.ReportFile == "" {
		errs = append(errs, "OUTPUT_REPORT_FILE must not be empty")
	}
	if c.Output.SkippedFile == "" {
		errs = append(errs, "OUTPUT_SKIPPED_FILE must not be empty")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a string representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Files: {Pullsheet: %q, PullOrder: %q, Catalog: %q}, ",
		c.Files.Pullsheet, c.Files.PullOrder, c.Files.Catalog))
	b.WriteString(fmt.Sprintf("Rules: {ACVUpper: %s, ACVLower: %s, MatchRatePivot: %d}, ",
		c.Rules.ACVUpper, c.Rules.ACVLower, c.Rules.MatchRatePivot))
	b.WriteString(fmt.Sprintf("Output: {Dir: %q, ReportFile: %q}, ",
		c.Output.Dir, c.Output.ReportFile))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
