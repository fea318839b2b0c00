package core

// curate.go implements the automatic curation pass: when a submission is
// rejected, try to flip it to accepted by removing whole low-value line
// items. This is a greedy local search, not an optimal one - it never
// explores removing a pricier item whose small quantity might preserve the
// floor while lifting ACV faster. That trade-off is deliberate: the loop is
// bounded by the item count (one whole item leaves per iteration), so it
// always terminates.

import "github.com/shopspring/decimal"

// CurationOutcome is the result of a curation attempt.
// When Achieved is false the caller keeps its original rejected decision;
// curation never makes things worse and never errors.
type CurationOutcome struct {
	Achieved bool
	Removed  []string           // Item IDs removed, in removal order
	Records  []SubmissionRecord // The curated working set when Achieved
	Decision Decision           // The accepting decision when Achieved
}

// Curate greedily removes the lowest-unit-value item and re-evaluates until
// the submission is accepted or no helpful removal remains.
//
// Removal stops when it would drop total quantity below MinTotalQuantity:
// removing cheap items only ever raises ACV, but the quantity floor is a
// hard criterion, so going below it can never lead to acceptance.
//
// Ties on unit value are broken toward the larger submitted quantity (more
// low-value volume leaves per step), then by ascending item ID so the result
// is deterministic.
//
// The records slice is copied; the caller's submission is never mutated.
func Curate(records []SubmissionRecord, pullsheet []PullsheetEntry, cov CatalogCoverage, threshold decimal.Decimal) CurationOutcome {
	working := make([]SubmissionRecord, len(records))
	copy(working, records)

	outcome := CurationOutcome{}
	totalQty := TotalQuantity(working)

	for len(working) > 0 {
		idx := removalCandidate(working)
		candidate := working[idx]

		if totalQty-candidate.Quantity < MinTotalQuantity {
			return outcome
		}

		working = append(working[:idx], working[idx+1:]...)
		totalQty -= candidate.Quantity
		outcome.Removed = append(outcome.Removed, candidate.ItemID)

		rows := Reconcile(working, pullsheet)
		metrics, err := ComputeMetrics(rows, cov)
		if err != nil {
			return CurationOutcome{}
		}

		decision := Decide(metrics, threshold)
		if decision.Accepted {
			outcome.Achieved = true
			outcome.Records = working
			outcome.Decision = decision
			return outcome
		}
	}

	return outcome
}

// removalCandidate returns the index of the next item to remove: lowest unit
// value, then largest quantity, then smallest item ID.
func removalCandidate(records []SubmissionRecord) int {
	best := 0
	for i := 1; i < len(records); i++ {
		if lessForRemoval(records[i], records[best]) {
			best = i
		}
	}
	return best
}

func lessForRemoval(a, b SubmissionRecord) bool {
	if cmp := a.UnitValue.Cmp(b.UnitValue); cmp != 0 {
		return cmp < 0
	}
	if a.Quantity != b.Quantity {
		return a.Quantity > b.Quantity
	}
	return a.ItemID < b.ItemID
}
