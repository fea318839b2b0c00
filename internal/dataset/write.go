package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV writes rows to path as CSV with the given column order.
// The destination directory is created if it does not exist.
// Cells missing from a row are written as empty strings.
func WriteCSV(path string, columns []string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("writing header to %s: %w", filepath.Base(path), err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row to %s: %w", filepath.Base(path), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}

	return f.Close()
}
