package core

// report.go assembles the terminal evaluation result and its serialized
// forms. A result always carries a definitive status and the full metrics
// snapshot; undefined metrics serialize as null, never as zero.

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/the-muppet/SubmissionEvaluator/internal/dataset"
)

// Status is the binary evaluation verdict.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// EvaluationResult is the terminal output of one evaluation run.
// It is never mutated after construction.
type EvaluationResult struct {
	SubmissionID uuid.UUID
	Status       Status
	Threshold    decimal.Decimal
	Metrics      SubmissionMetrics

	// Curated is true when the curation pass flipped a rejection into an
	// acceptance. RemovedItems lists what curation removed, in order;
	// CuratedRecords is the surviving submission.
	Curated        bool
	RemovedItems   []string
	CuratedRecords []SubmissionRecord

	// Skipped lists the malformed submission rows dropped during loading.
	Skipped []SkippedRow

	// Records is the loaded, aggregated submission the evaluation ran on.
	Records []SubmissionRecord
}

// evaluationReport is the wire form of an EvaluationResult.
// Pointer fields are null when the underlying metric is undefined.
type evaluationReport struct {
	SubmissionID           string   `json:"submission_id,omitempty"`
	Status                 string   `json:"status"`
	ACV                    *float64 `json:"acv"`
	MatchRate              *float64 `json:"match_rate"`
	PullsheetMissingRate   *float64 `json:"pullsheet_missing_rate"`
	CatalogOnPullsheetRate *float64 `json:"catalog_on_pullsheet_rate"`
	TotalValue             float64  `json:"total_value"`
	TotalQuantity          int      `json:"total_quantity"`
	TotalAdjustedQty       int      `json:"total_adjusted_qty"`
	TotalRejectedQuantity  int      `json:"total_rejected_quantity"`
	Threshold              float64  `json:"threshold"`
	Curated                bool     `json:"curated"`
	RemovedItems           []string `json:"removed_items"`
	SkippedRows            int      `json:"skipped_rows"`
}

// MarshalJSON serializes the result in the evaluation report contract.
func (r *EvaluationResult) MarshalJSON() ([]byte, error) {
	rep := evaluationReport{
		Status:                string(r.Status),
		TotalValue:            r.Metrics.TotalValue.InexactFloat64(),
		TotalQuantity:         r.Metrics.TotalQuantity,
		TotalAdjustedQty:      r.Metrics.TotalAdjustedQty,
		TotalRejectedQuantity: r.Metrics.TotalRejectedQty,
		Threshold:             r.Threshold.InexactFloat64(),
		Curated:               r.Curated,
		RemovedItems:          r.RemovedItems,
		SkippedRows:           len(r.Skipped),
	}

	if r.SubmissionID != uuid.Nil {
		rep.SubmissionID = r.SubmissionID.String()
	}
	if rep.RemovedItems == nil {
		rep.RemovedItems = []string{}
	}

	if r.Metrics.Defined {
		acv := r.Metrics.ACV.InexactFloat64()
		match := r.Metrics.MatchRate
		missing := r.Metrics.PullsheetMissingRate
		rep.ACV = &acv
		rep.MatchRate = &match
		rep.PullsheetMissingRate = &missing
	}
	if r.Metrics.CatalogRateDefined {
		catalog := r.Metrics.CatalogOnPullsheetRate
		rep.CatalogOnPullsheetRate = &catalog
	}

	return json.Marshal(rep)
}

// ReportColumns is the column order of the one-row summary CSV.
var ReportColumns = []string{
	"acv", "match_rate", "status", "threshold",
	"total_quantity", "total_value",
	"pullsheet_missing_rate", "catalog_on_pullsheet_rate",
	"total_rejected_quantity", "curated",
}

// ReportRow renders the result as a single summary CSV row.
// Undefined metrics render as empty cells.
func (r *EvaluationResult) ReportRow() dataset.Row {
	row := dataset.Row{
		"status":                  string(r.Status),
		"threshold":               r.Threshold.StringFixed(2),
		"total_quantity":          fmt.Sprintf("%d", r.Metrics.TotalQuantity),
		"total_value":             r.Metrics.TotalValue.StringFixed(2),
		"total_rejected_quantity": fmt.Sprintf("%d", r.Metrics.TotalRejectedQty),
		"curated":                 fmt.Sprintf("%t", r.Curated),
	}

	if r.Metrics.Defined {
		row["acv"] = r.Metrics.ACV.StringFixed(2)
		row["match_rate"] = fmt.Sprintf("%.2f", r.Metrics.MatchRate)
		row["pullsheet_missing_rate"] = fmt.Sprintf("%.2f", r.Metrics.PullsheetMissingRate)
	}
	if r.Metrics.CatalogRateDefined {
		row["catalog_on_pullsheet_rate"] = fmt.Sprintf("%.2f", r.Metrics.CatalogOnPullsheetRate)
	}

	return row
}
