package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/the-muppet/SubmissionEvaluator/internal/dataset"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newDataset builds an in-memory dataset from a header and row cells.
// Shared by every test in this package.
func newDataset(name string, columns []string, rows ...[]string) dataset.Dataset {
	ds := dataset.Dataset{Name: name, Columns: columns}
	for _, cells := range rows {
		row := dataset.Row{}
		for i, col := range columns {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var submissionColumns = []string{"tcgplayer_id", "add_to_quantity", "tcg_market_price"}

// ============================================================================
// LoadSubmission
// ============================================================================

func TestLoadSubmission_ParsesRows(t *testing.T) {
	ds := newDataset("submission", submissionColumns,
		[]string{"101", "3", "2.50"},
		[]string{"102", "1", "$1,234.50"},
		[]string{"103", "0", "10.00"},
	)

	records, skipped, err := LoadSubmission(ds)
	if err != nil {
		t.Fatalf("LoadSubmission() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	if records[1].ItemID != "102" || !records[1].UnitValue.Equal(dec("1234.50")) {
		t.Errorf("records[1] = %+v, want id 102 with unit value 1234.50", records[1])
	}
	if records[2].Quantity != 0 {
		t.Errorf("records[2].Quantity = %d, want 0", records[2].Quantity)
	}
}

func TestLoadSubmission_AggregatesDuplicates(t *testing.T) {
	// Two rows for the same item: qty 2 @ $10 and qty 3 @ $20.
	// Expected: one record with qty 5 and weighted unit value
	// (2*10 + 3*20) / 5 = 16.
	ds := newDataset("submission", submissionColumns,
		[]string{"A1", "2", "10.00"},
		[]string{"A1", "3", "20.00"},
	)

	records, skipped, err := LoadSubmission(ds)
	if err != nil {
		t.Fatalf("LoadSubmission() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	got := records[0]
	if got.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", got.Quantity)
	}
	if !got.UnitValue.Equal(dec("16")) {
		t.Errorf("UnitValue = %s, want 16", got.UnitValue)
	}
}

func TestLoadSubmission_ZeroQuantityDuplicatesKeepFirstUnit(t *testing.T) {
	ds := newDataset("submission", submissionColumns,
		[]string{"A1", "0", "4.00"},
		[]string{"A1", "0", "9.00"},
	)

	records, _, err := LoadSubmission(ds)
	if err != nil {
		t.Fatalf("LoadSubmission() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", records[0].Quantity)
	}
	if !records[0].UnitValue.Equal(dec("4.00")) {
		t.Errorf("UnitValue = %s, want 4.00", records[0].UnitValue)
	}
}

func TestLoadSubmission_SkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name       string
		cells      []string
		wantReason string
	}{
		{
			name:       "missing item id",
			cells:      []string{"", "3", "2.50"},
			wantReason: "missing item id",
		},
		{
			name:       "non-numeric quantity",
			cells:      []string{"101", "abc", "2.50"},
			wantReason: "invalid quantity",
		},
		{
			name:       "negative quantity",
			cells:      []string{"101", "-2", "2.50"},
			wantReason: "invalid quantity",
		},
		{
			name:       "non-numeric price",
			cells:      []string{"101", "3", "n/a"},
			wantReason: "invalid unit value",
		},
		{
			name:       "negative price",
			cells:      []string{"101", "3", "-2.50"},
			wantReason: "invalid unit value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := newDataset("submission", submissionColumns,
				tt.cells,
				[]string{"900", "1", "1.00"}, // one good row survives
			)

			records, skipped, err := LoadSubmission(ds)
			if err != nil {
				t.Fatalf("LoadSubmission() error = %v", err)
			}
			if len(records) != 1 || records[0].ItemID != "900" {
				t.Errorf("records = %+v, want the single good row", records)
			}
			if len(skipped) != 1 {
				t.Fatalf("len(skipped) = %d, want 1", len(skipped))
			}
			if skipped[0].Line != 1 {
				t.Errorf("skipped line = %d, want 1", skipped[0].Line)
			}
			if !strings.Contains(skipped[0].Reason, tt.wantReason) {
				t.Errorf("reason = %q, want it to contain %q", skipped[0].Reason, tt.wantReason)
			}
		})
	}
}

func TestLoadSubmission_MissingColumnIsSchemaError(t *testing.T) {
	ds := newDataset("submission", []string{"tcgplayer_id", "tcg_market_price"},
		[]string{"101", "2.50"},
	)

	_, _, err := LoadSubmission(ds)
	if err == nil {
		t.Fatal("LoadSubmission() error = nil, want SchemaError")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "add_to_quantity" {
		t.Errorf("Missing = %v, want [add_to_quantity]", schemaErr.Missing)
	}
}

// ============================================================================
// LoadPullsheet
// ============================================================================

func TestLoadPullsheet_FirstEntryWinsOnDuplicate(t *testing.T) {
	ds := newDataset("pullsheet", []string{"tcgplayer_id", "max_qty", "set_name"},
		[]string{"101", "4", "Alpha"},
		[]string{"101", "9", "Beta"},
		[]string{"102", "2", ""},
	)

	entries, skipped, err := LoadPullsheet(ds)
	if err != nil {
		t.Fatalf("LoadPullsheet() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].MaxQty != 4 || entries[0].SetName != "Alpha" {
		t.Errorf("entries[0] = %+v, want the first occurrence of 101", entries[0])
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0].Reason, "duplicate item id") {
		t.Errorf("skipped = %v, want one duplicate-id row", skipped)
	}
}

func TestLoadPullsheet_SkipsInvalidMaxQty(t *testing.T) {
	ds := newDataset("pullsheet", []string{"tcgplayer_id", "max_qty"},
		[]string{"101", "lots"},
	)

	entries, skipped, err := LoadPullsheet(ds)
	if err != nil {
		t.Fatalf("LoadPullsheet() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0].Reason, "invalid max quantity") {
		t.Errorf("skipped = %v, want one invalid-max row", skipped)
	}
}

// ============================================================================
// LoadCatalog / LoadPullOrder
// ============================================================================

func TestLoadCatalog_DeduplicatesSilently(t *testing.T) {
	ds := newDataset("catalog", []string{"tcgplayer_id"},
		[]string{"101"},
		[]string{"102"},
		[]string{"101"},
	)

	entries, skipped, err := LoadCatalog(ds)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2 distinct items", len(entries))
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none for a benign duplicate", skipped)
	}
}

func TestLoadPullOrder_FirstAssignmentWins(t *testing.T) {
	ds := newDataset("pullorder", []string{"set_name", "shelf_order"},
		[]string{"Alpha", "2"},
		[]string{"Alpha", "7"},
		[]string{"Beta", "1"},
		[]string{"", "3"},
	)

	entries, skipped, err := LoadPullOrder(ds)
	if err != nil {
		t.Fatalf("LoadPullOrder() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].SetName != "Alpha" || entries[0].ShelfOrder != 2 {
		t.Errorf("entries[0] = %+v, want Alpha at shelf 2", entries[0])
	}
	if len(skipped) != 2 {
		t.Errorf("len(skipped) = %d, want 2 (duplicate set, missing set)", len(skipped))
	}
}

// ============================================================================
// Cell Parsing
// ============================================================================

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{"0", 0, true},
		{"1,200", 1200, true},
		{` ="42" `, 42, true},
		{"", 0, false},
		{"-1", 0, false},
		{"2.5", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseQuantity(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseQuantity(%q) = (%d, %t), want (%d, %t)",
				tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2.50", "2.50", true},
		{"$1,234.50", "1234.50", true},
		{"€3.00", "3.00", true},
		{"£0.99", "0.99", true},
		{"0", "0", true},
		{"", "", false},
		{"-2.50", "", false},
		{"free", "", false},
		{"$", "", false},
	}

	for _, tt := range tests {
		got, ok := parseMoney(tt.in)
		if ok != tt.wantOK {
			t.Errorf("parseMoney(%q) ok = %t, want %t", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(dec(tt.want)) {
			t.Errorf("parseMoney(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
