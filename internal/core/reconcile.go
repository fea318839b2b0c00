package core

// reconcile.go joins the submission against the pullsheet and measures
// catalog coverage. Both operations are pure: they own their outputs and
// never mutate their inputs.

import "sort"

// Reconcile joins each submitted item against its pullsheet entry.
//
// An item with a pullsheet entry gets adjusted_qty = min(submitted, max).
// An item with no entry is unmatched: adjusted_qty is zero and the full
// submitted quantity counts as rejected. Rows are returned sorted by item ID
// so downstream aggregation and curation are deterministic.
func Reconcile(records []SubmissionRecord, pullsheet []PullsheetEntry) []ReconciledRow {
	byID := make(map[string]PullsheetEntry, len(pullsheet))
	for _, entry := range pullsheet {
		if _, exists := byID[entry.ItemID]; !exists {
			byID[entry.ItemID] = entry
		}
	}

	rows := make([]ReconciledRow, 0, len(records))
	for _, rec := range records {
		row := ReconciledRow{
			ItemID:       rec.ItemID,
			SubmittedQty: rec.Quantity,
			UnitValue:    rec.UnitValue,
		}

		if entry, ok := byID[rec.ItemID]; ok {
			row.OnPullsheet = true
			row.MaxQty = entry.MaxQty
			row.SetName = entry.SetName
			row.AdjustedQty = min(rec.Quantity, entry.MaxQty)
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })
	return rows
}

// CatalogCoverage counts how much of the catalog the pullsheet wants.
// It is a property of the two reference datasets alone and is meaningful
// even for an empty submission.
type CatalogCoverage struct {
	CatalogItems int // Distinct catalog item IDs
	OnPullsheet  int // Of those, how many have a pullsheet entry
}

// Rate returns the coverage as a percentage in [0, 100].
// The second return is false when the catalog is empty and the rate is
// undefined.
func (c CatalogCoverage) Rate() (float64, bool) {
	if c.CatalogItems == 0 {
		return 0, false
	}
	return 100 * float64(c.OnPullsheet) / float64(c.CatalogItems), true
}

// Coverage computes catalog-on-pullsheet coverage.
func Coverage(catalog []CatalogEntry, pullsheet []PullsheetEntry) CatalogCoverage {
	onSheet := make(map[string]bool, len(pullsheet))
	for _, entry := range pullsheet {
		onSheet[entry.ItemID] = true
	}

	cov := CatalogCoverage{}
	seen := make(map[string]bool, len(catalog))
	for _, entry := range catalog {
		if seen[entry.ItemID] {
			continue
		}
		seen[entry.ItemID] = true
		cov.CatalogItems++
		if onSheet[entry.ItemID] {
			cov.OnPullsheet++
		}
	}

	return cov
}

// OrderForPicking returns the accepted rows (adjusted quantity > 0) in
// warehouse picking sequence: by the pull order's shelf position for the
// row's set, then by item ID. Rows whose set has no shelf assignment sort
// last.
func OrderForPicking(rows []ReconciledRow, pullOrder []PullOrderEntry) []ReconciledRow {
	shelves := make(map[string]int, len(pullOrder))
	for _, entry := range pullOrder {
		if _, exists := shelves[entry.SetName]; !exists {
			shelves[entry.SetName] = entry.ShelfOrder
		}
	}

	var picks []ReconciledRow
	for _, row := range rows {
		if row.AdjustedQty > 0 {
			picks = append(picks, row)
		}
	}

	shelfOf := func(r ReconciledRow) (int, bool) {
		shelf, ok := shelves[r.SetName]
		return shelf, ok
	}

	sort.SliceStable(picks, func(i, j int) bool {
		si, iOK := shelfOf(picks[i])
		sj, jOK := shelfOf(picks[j])
		switch {
		case iOK != jOK:
			return iOK // assigned shelves come first
		case iOK && si != sj:
			return si < sj
		default:
			return picks[i].ItemID < picks[j].ItemID
		}
	})

	return picks
}
