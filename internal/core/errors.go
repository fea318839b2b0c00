package core

import (
	"fmt"
	"strings"
)

// SchemaError reports a dataset whose header is missing required columns
// entirely. This is fatal: per-row recovery is impossible when the column
// does not exist.
type SchemaError struct {
	Dataset string   // Which dataset: "submission", "pullsheet", ...
	Missing []string // Required columns absent from the header
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s dataset is missing required columns: %s",
		e.Dataset, strings.Join(e.Missing, ", "))
}

// SkippedRow records a single malformed row that was dropped during loading.
// Skipped rows are non-fatal; they are accumulated and surfaced in the
// report so sellers can fix their export.
type SkippedRow struct {
	Dataset string
	Line    int // 1-based data row number within the dataset
	Reason  string
}

func (s SkippedRow) String() string {
	return fmt.Sprintf("%s row %d: %s", s.Dataset, s.Line, s.Reason)
}
