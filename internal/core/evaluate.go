package core

// evaluate.go is the evaluation context: it wires the pipeline stages
// together for one submission. The Evaluator owns only read-only reference
// data; every call builds its working state from scratch, so calls are
// independent and idempotent.

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/the-muppet/SubmissionEvaluator/internal/dataset"
)

// Evaluator evaluates submissions against a fixed set of reference data.
// It is safe for concurrent use; Evaluate never mutates the reference
// slices or the submission it is given.
type Evaluator struct {
	Pullsheet []PullsheetEntry
	Catalog   []CatalogEntry
	PullOrder []PullOrderEntry

	// ReferenceSkipped lists malformed rows dropped while loading the
	// reference datasets. Kept for operator visibility; these do not
	// affect individual submission results.
	ReferenceSkipped []SkippedRow

	coverage CatalogCoverage
}

// NewEvaluator loads the three reference datasets and precomputes catalog
// coverage. A SchemaError in any reference dataset fails construction.
func NewEvaluator(pullsheet, catalog, pullOrder dataset.Dataset) (*Evaluator, error) {
	sheet, sheetSkipped, err := LoadPullsheet(pullsheet)
	if err != nil {
		return nil, fmt.Errorf("loading pullsheet: %w", err)
	}

	cat, catSkipped, err := LoadCatalog(catalog)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	order, orderSkipped, err := LoadPullOrder(pullOrder)
	if err != nil {
		return nil, fmt.Errorf("loading pull order: %w", err)
	}

	e := &Evaluator{
		Pullsheet: sheet,
		Catalog:   cat,
		PullOrder: order,
		coverage:  Coverage(cat, sheet),
	}
	e.ReferenceSkipped = append(e.ReferenceSkipped, sheetSkipped...)
	e.ReferenceSkipped = append(e.ReferenceSkipped, catSkipped...)
	e.ReferenceSkipped = append(e.ReferenceSkipped, orderSkipped...)

	return e, nil
}

// CatalogCoverage exposes the precomputed catalog-on-pullsheet coverage.
func (e *Evaluator) CatalogCoverage() CatalogCoverage { return e.coverage }

// Evaluate runs the full pipeline on a raw submission dataset with a fixed
// ACV threshold. Returns a SchemaError (wrapped) if the submission is
// missing required columns; every other malformed input degrades to skipped
// rows and a definitive result.
func (e *Evaluator) Evaluate(submission dataset.Dataset, threshold decimal.Decimal) (*EvaluationResult, error) {
	records, skipped, err := LoadSubmission(submission)
	if err != nil {
		return nil, fmt.Errorf("loading submission: %w", err)
	}

	sub := Submission{Records: records}
	return e.evaluate(sub, skipped, func(SubmissionMetrics) decimal.Decimal { return threshold })
}

// EvaluateWithPolicy is Evaluate with the threshold chosen per submission by
// the policy, once the match rate is known.
func (e *Evaluator) EvaluateWithPolicy(submission dataset.Dataset, policy ThresholdPolicy) (*EvaluationResult, error) {
	records, skipped, err := LoadSubmission(submission)
	if err != nil {
		return nil, fmt.Errorf("loading submission: %w", err)
	}

	sub := Submission{Records: records}
	return e.evaluate(sub, skipped, policy.For)
}

// EvaluateSubmission evaluates an already-typed submission, keeping its
// metadata (ID, store, seller) on the result. The skipped rows from loading
// the submission, if any, are carried through to the report.
func (e *Evaluator) EvaluateSubmission(sub Submission, skipped []SkippedRow, policy ThresholdPolicy) (*EvaluationResult, error) {
	return e.evaluate(sub, skipped, policy.For)
}

// evaluate is the shared pipeline tail: reconcile, measure, decide, and
// curate on rejection.
func (e *Evaluator) evaluate(sub Submission, skipped []SkippedRow, thresholdFor func(SubmissionMetrics) decimal.Decimal) (*EvaluationResult, error) {
	rows := Reconcile(sub.Records, e.Pullsheet)

	metrics, err := ComputeMetrics(rows, e.coverage)
	if err != nil {
		return nil, fmt.Errorf("computing metrics: %w", err)
	}

	threshold := thresholdFor(metrics)
	decision := Decide(metrics, threshold)

	result := &EvaluationResult{
		SubmissionID: sub.ID,
		Status:       StatusRejected,
		Threshold:    threshold,
		Metrics:      metrics,
		Skipped:      skipped,
		Records:      sub.Records,
	}

	if decision.Accepted {
		result.Status = StatusAccepted
		return result, nil
	}

	outcome := Curate(sub.Records, e.Pullsheet, e.coverage, threshold)
	if outcome.Achieved {
		result.Status = StatusAccepted
		result.Curated = true
		result.RemovedItems = outcome.Removed
		result.CuratedRecords = outcome.Records
		result.Metrics = outcome.Decision.Metrics
	}

	return result, nil
}

// PickList returns the accepted portion of a result in warehouse picking
// order. Empty for rejected submissions.
func (e *Evaluator) PickList(result *EvaluationResult) []ReconciledRow {
	if result.Status != StatusAccepted {
		return nil
	}

	records := result.Records
	if result.Curated {
		records = result.CuratedRecords
	}

	return OrderForPicking(Reconcile(records, e.Pullsheet), e.PullOrder)
}
