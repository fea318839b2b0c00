package core

// metrics.go derives the quality metrics from the reconciled view.
// Everything is computed in one pass; metrics are recomputed from scratch
// whenever the submission changes, never updated incrementally.

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SubmissionMetrics is the immutable snapshot of one evaluation pass.
//
// Defined reports whether the quantity-based metrics (ACV, MatchRate,
// PullsheetMissingRate) exist: a zero-quantity submission has no average
// card value, and that is reported explicitly rather than as zero.
// CatalogRateDefined guards CatalogOnPullsheetRate the same way for an
// empty catalog.
type SubmissionMetrics struct {
	TotalValue       decimal.Decimal
	TotalQuantity    int
	TotalAdjustedQty int
	TotalRejectedQty int

	Defined              bool
	ACV                  decimal.Decimal
	MatchRate            float64
	PullsheetMissingRate float64

	CatalogRateDefined     bool
	CatalogOnPullsheetRate float64
}

// ComputeMetrics aggregates the reconciled rows into a metrics snapshot.
//
// It returns an error if a row violates the reconciliation invariant
// (adjusted quantity outside [0, submitted]); a violated invariant is a
// defect to surface, not something to clamp away.
func ComputeMetrics(rows []ReconciledRow, cov CatalogCoverage) (SubmissionMetrics, error) {
	m := SubmissionMetrics{TotalValue: decimal.Zero}

	missingQty := 0
	for _, row := range rows {
		if row.AdjustedQty < 0 || row.AdjustedQty > row.SubmittedQty {
			return SubmissionMetrics{}, fmt.Errorf(
				"reconciled row %s: adjusted quantity %d outside [0, %d]",
				row.ItemID, row.AdjustedQty, row.SubmittedQty)
		}

		m.TotalQuantity += row.SubmittedQty
		m.TotalAdjustedQty += row.AdjustedQty
		m.TotalValue = m.TotalValue.Add(
			row.UnitValue.Mul(decimal.NewFromInt(int64(row.SubmittedQty))))

		if !row.OnPullsheet {
			missingQty += row.SubmittedQty
		}
	}

	m.TotalRejectedQty = m.TotalQuantity - m.TotalAdjustedQty

	if m.TotalQuantity > 0 {
		m.Defined = true
		m.ACV = m.TotalValue.Div(decimal.NewFromInt(int64(m.TotalQuantity)))
		m.MatchRate = 100 * float64(m.TotalAdjustedQty) / float64(m.TotalQuantity)
		m.PullsheetMissingRate = 100 * float64(missingQty) / float64(m.TotalQuantity)
	}

	if rate, ok := cov.Rate(); ok {
		m.CatalogRateDefined = true
		m.CatalogOnPullsheetRate = rate
	}

	return m, nil
}
