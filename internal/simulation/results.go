package simulation

// PercentileBands holds, per year index 0..YearsInRetirement, the
// cross-path balance at each of five percentiles. Each slice has length
// YearsInRetirement+1.
type PercentileBands struct {
	P5  []float64 `json:"p5"`
	P25 []float64 `json:"p25"`
	P50 []float64 `json:"p50"`
	P75 []float64 `json:"p75"`
	P95 []float64 `json:"p95"`
}

// Results is the immutable output of a completed run. FinalBalances is
// the full sorted distribution of ending balances; it is O(iterations),
// retained only for transient display and excluded from serialization so
// a persisted summary stays small.
type Results struct {
	Iterations         int             `json:"iterations"`
	YearsInRetirement  int             `json:"years_in_retirement"`
	SuccessRatePct     float64         `json:"success_rate_pct"`
	MedianFinalBalance float64         `json:"median_final_balance"`
	WorstCase          float64         `json:"worst_case"`
	BestCase           float64         `json:"best_case"`
	PercentileBands    PercentileBands `json:"percentile_bands"`

	FinalBalances []float64 `json:"-"`
}

// Summary returns a copy of the results without the per-path final
// balance distribution, suitable for persistence.
func (r *Results) Summary() Results {
	summary := *r
	summary.FinalBalances = nil
	return summary
}
