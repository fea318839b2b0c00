// Package dataset reads and writes the tabular files consumed by the
// evaluation core.
//
// The core never touches files directly; it receives row collections with
// named columns (see internal/core). This package is the collaborator that
// produces those collections from CSV or XLSX sources and writes the CSV
// outputs (evaluation report, skipped rows, curated submission).
//
// Headers are normalized on read: trimmed, lowercased, spaces replaced with
// underscores. "TCGplayer Id" and "tcgplayer_id" address the same column, so
// exports from different tools line up without per-source mappings.
package dataset

import "strings"

// Row is a single data row keyed by normalized column name.
// Cells keep their raw string values; typing happens in the core loader.
type Row map[string]string

// Dataset is a parsed tabular file: normalized column names in file order,
// plus data rows.
type Dataset struct {
	Name    string // Logical dataset name: "submission", "pullsheet", ...
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the dataset's header contains the given
// normalized column name.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeHeader converts a raw header cell into its canonical column name:
// cleaned of CSV artifacts, trimmed, lowercased, spaces to underscores.
func NormalizeHeader(s string) string {
	s = CleanCell(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

// CleanCell removes common CSV artifacts from a cell value:
//   - Trims whitespace
//   - Removes Excel formula prefix (="value")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// fromRecords builds a Dataset from raw records where the first record is the
// header row. Fully empty data rows are dropped. Ragged rows are tolerated;
// missing trailing cells simply have no entry in the Row map.
func fromRecords(name string, records [][]string) Dataset {
	ds := Dataset{Name: name}
	if len(records) == 0 {
		return ds
	}

	ds.Columns = make([]string, len(records[0]))
	for i, h := range records[0] {
		ds.Columns[i] = NormalizeHeader(h)
	}

	for _, rec := range records[1:] {
		empty := true
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		row := make(Row, len(ds.Columns))
		for i, col := range ds.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds
}
