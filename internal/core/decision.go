package core

import "github.com/shopspring/decimal"

// MinTotalQuantity is the fixed minimum submission size.
// Submissions below this total quantity are rejected regardless of value.
const MinTotalQuantity = 500

// Decision is the outcome of applying the acceptance criteria to a metrics
// snapshot. The snapshot and threshold are kept alongside the verdict for
// auditability.
type Decision struct {
	Accepted  bool
	Threshold decimal.Decimal
	Metrics   SubmissionMetrics
	Reasons   []string // Failed criteria, empty when accepted
}

// Decide applies the two acceptance criteria: total quantity at or above
// MinTotalQuantity, and ACV at or above the caller's threshold.
//
// Undefined metrics reject by definition - an empty submission never
// satisfies a criterion by default.
func Decide(m SubmissionMetrics, threshold decimal.Decimal) Decision {
	d := Decision{Threshold: threshold, Metrics: m}

	if !m.Defined {
		d.Reasons = append(d.Reasons, "submission quantity is zero; ACV is undefined")
		return d
	}
	if m.TotalQuantity < MinTotalQuantity {
		d.Reasons = append(d.Reasons, "total quantity below minimum")
	}
	if m.ACV.LessThan(threshold) {
		d.Reasons = append(d.Reasons, "average card value below threshold")
	}

	d.Accepted = len(d.Reasons) == 0
	return d
}

// ThresholdPolicy selects the ACV threshold from the match rate: a
// submission matching at least MatchRatePivot percent of its quantity gets
// the lower threshold, everything else the upper. A high match rate means
// most of the cards are wanted, so a cheaper average is acceptable.
type ThresholdPolicy struct {
	Upper          decimal.Decimal
	Lower          decimal.Decimal
	MatchRatePivot float64
}

// For returns the threshold to apply to the given metrics.
// Undefined metrics get the upper threshold; the decision will reject
// regardless.
func (p ThresholdPolicy) For(m SubmissionMetrics) decimal.Decimal {
	if m.Defined && m.MatchRate >= p.MatchRatePivot {
		return p.Lower
	}
	return p.Upper
}
