// Package core evaluates trading-card submissions against a retailer's
// acceptance rules.
//
// This package is the heart of the evaluator, containing all decision logic
// independent of any file format or transport layer. It can be used by the
// CLI, batch jobs, or tests without modification.
//
// # Pipeline
//
// An evaluation flows through a fixed pipeline:
//
//	Loader -> Reconciler -> Metrics -> Decision -> (if rejected) Curator -> Report
//
//   - Loader: turns raw datasets into typed records, dropping malformed rows
//     as skipped (missing IDs, unparsable numbers) and failing hard when a
//     required column is absent entirely.
//   - Reconciler: joins submitted items against the pullsheet, capping each
//     item's quantity at the pullsheet maximum.
//   - Metrics: single-pass aggregation producing ACV, match rate, and the
//     related rates. A zero-quantity submission has undefined quantity
//     metrics; the engine reports that explicitly rather than emitting zero.
//   - Decision: both criteria must hold for acceptance - a minimum total
//     quantity and an ACV at or above the caller's threshold.
//   - Curator: on rejection, greedily removes the lowest-value items to try
//     to lift the ACV over the threshold without dropping below the quantity
//     floor.
//
// # Evaluation context
//
// An [Evaluator] owns the read-only reference data (pullsheet, catalog, pull
// order). Each [Evaluator.Evaluate] call works on its own private state, so
// concurrent evaluations against the same Evaluator are safe and two runs
// over the same inputs produce identical results.
//
// # Error handling
//
// Dataset-level problems ([SchemaError]) abort the evaluation. Row-level
// problems never do; the offending rows are dropped and reported as
// [SkippedRow] entries. A submission with no valid rows is still decidable:
// it is rejected with its quantity metrics marked undefined.
package core
