package core

// loader.go normalizes raw dataset rows into typed records.
//
// Per-row failures (blank IDs, unparsable numbers) drop the row and record a
// SkippedRow; a silently-zeroed quantity or price would distort ACV, so bad
// values are never defaulted. A required column missing from the header
// entirely is a SchemaError and aborts the load.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/the-muppet/SubmissionEvaluator/internal/dataset"
	"github.com/the-muppet/SubmissionEvaluator/internal/schema"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// checkSchema verifies that every required column exists in the dataset
// header. Returns a SchemaError listing all missing columns, or nil.
func checkSchema(ds dataset.Dataset, def schema.Definition) *SchemaError {
	var missing []string
	for _, col := range def.RequiredColumns() {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Dataset: string(def.Kind), Missing: missing}
	}
	return nil
}

// submissionAccumulator aggregates duplicate submission rows for one item.
type submissionAccumulator struct {
	quantity  int
	valueSum  decimal.Decimal // sum of qty * unit value across duplicates
	firstUnit decimal.Decimal // fallback when all duplicate rows have qty 0
}

// LoadSubmission converts a submission dataset into typed records.
//
// Duplicate rows for the same item ID are aggregated: quantities sum, and
// the unit value becomes the quantity-weighted average of the duplicates,
// which keeps ACV exact under total_value / total_quantity.
func LoadSubmission(ds dataset.Dataset) ([]SubmissionRecord, []SkippedRow, error) {
	def, err := schema.Get(schema.KindSubmission)
	if err != nil {
		return nil, nil, err
	}
	if schemaErr := checkSchema(ds, def); schemaErr != nil {
		return nil, nil, schemaErr
	}

	var skipped []SkippedRow
	acc := make(map[string]*submissionAccumulator)
	var order []string

	for i, row := range ds.Rows {
		line := i + 1

		id := dataset.CleanCell(row["tcgplayer_id"])
		if id == "" {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line, Reason: "missing item id",
			})
			continue
		}

		qty, ok := parseQuantity(row["add_to_quantity"])
		if !ok {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line,
				Reason: fmt.Sprintf("invalid quantity %q", row["add_to_quantity"]),
			})
			continue
		}

		price, ok := parseMoney(row["tcg_market_price"])
		if !ok {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line,
				Reason: fmt.Sprintf("invalid unit value %q", row["tcg_market_price"]),
			})
			continue
		}

		a, exists := acc[id]
		if !exists {
			a = &submissionAccumulator{firstUnit: price}
			acc[id] = a
			order = append(order, id)
		}
		a.quantity += qty
		a.valueSum = a.valueSum.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	records := make([]SubmissionRecord, 0, len(order))
	for _, id := range order {
		a := acc[id]
		unit := a.firstUnit
		if a.quantity > 0 {
			unit = a.valueSum.Div(decimal.NewFromInt(int64(a.quantity)))
		}
		records = append(records, SubmissionRecord{
			ItemID:    id,
			Quantity:  a.quantity,
			UnitValue: unit,
		})
	}

	return records, skipped, nil
}

// LoadPullsheet converts a pullsheet dataset into typed entries.
// The first entry wins when an item ID appears twice; later duplicates are
// skipped so the at-most-one-entry-per-item join invariant holds.
func LoadPullsheet(ds dataset.Dataset) ([]PullsheetEntry, []SkippedRow, error) {
	def, err := schema.Get(schema.KindPullsheet)
	if err != nil {
		return nil, nil, err
	}
	if schemaErr := checkSchema(ds, def); schemaErr != nil {
		return nil, nil, schemaErr
	}

	var entries []PullsheetEntry
	var skipped []SkippedRow
	seen := make(map[string]bool)

	for i, row := range ds.Rows {
		line := i + 1

		id := dataset.CleanCell(row["tcgplayer_id"])
		if id == "" {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line, Reason: "missing item id",
			})
			continue
		}
		if seen[id] {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line,
				Reason: fmt.Sprintf("duplicate item id %q", id),
			})
			continue
		}

		maxQty, ok := parseQuantity(row["max_qty"])
		if !ok {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line,
				Reason: fmt.Sprintf("invalid max quantity %q", row["max_qty"]),
			})
			continue
		}

		seen[id] = true
		entries = append(entries, PullsheetEntry{
			ItemID:  id,
			MaxQty:  maxQty,
			SetName: dataset.CleanCell(row["set_name"]),
		})
	}

	return entries, skipped, nil
}

// LoadCatalog converts a catalog dataset into the distinct universe of known
// items. Duplicate IDs collapse; rows without an ID are skipped.
func LoadCatalog(ds dataset.Dataset) ([]CatalogEntry, []SkippedRow, error) {
	def, err := schema.Get(schema.KindCatalog)
	if err != nil {
		return nil, nil, err
	}
	if schemaErr := checkSchema(ds, def); schemaErr != nil {
		return nil, nil, schemaErr
	}

	var entries []CatalogEntry
	var skipped []SkippedRow
	seen := make(map[string]bool)

	for i, row := range ds.Rows {
		id := dataset.CleanCell(row["tcgplayer_id"])
		if id == "" {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: i + 1, Reason: "missing item id",
			})
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		entries = append(entries, CatalogEntry{ItemID: id})
	}

	return entries, skipped, nil
}

// LoadPullOrder converts a pull order dataset into shelf assignments.
// The first assignment wins per set name.
func LoadPullOrder(ds dataset.Dataset) ([]PullOrderEntry, []SkippedRow, error) {
	def, err := schema.Get(schema.KindPullOrder)
	if err != nil {
		return nil, nil, err
	}
	if schemaErr := checkSchema(ds, def); schemaErr != nil {
		return nil, nil, schemaErr
	}

	var entries []PullOrderEntry
	var skipped []SkippedRow
	seen := make(map[string]bool)

	for i, row := range ds.Rows {
		line := i + 1

		set := dataset.CleanCell(row["set_name"])
		if set == "" {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line, Reason: "missing set name",
			})
			continue
		}
		if seen[set] {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line,
				Reason: fmt.Sprintf("duplicate set name %q", set),
			})
			continue
		}

		shelf, ok := parseQuantity(row["shelf_order"])
		if !ok {
			skipped = append(skipped, SkippedRow{
				Dataset: ds.Name, Line: line,
				Reason: fmt.Sprintf("invalid shelf order %q", row["shelf_order"]),
			})
			continue
		}

		seen[set] = true
		entries = append(entries, PullOrderEntry{SetName: set, ShelfOrder: shelf})
	}

	return entries, skipped, nil
}

// parseQuantity parses a non-negative integer cell.
// Thousands separators are tolerated; negatives and fractions are not.
func parseQuantity(s string) (int, bool) {
	s = dataset.CleanCell(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseMoney parses a non-negative monetary cell.
// Handles currency symbols and thousands separators the way seller exports
// produce them ("$1,234.50").
func parseMoney(s string) (decimal.Decimal, bool) {
	s = dataset.CleanCell(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !numericRegex.MatchString(s) {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}
