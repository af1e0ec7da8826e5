package simulation

// Parameters is the immutable input bundle for one simulation run. All
// fields are plain float64: callers convert from their decimal
// representation before dispatching and re-wrap the aggregated results
// afterwards.
type Parameters struct {
	Iterations          int             `json:"iterations"`
	Allocation          AssetAllocation `json:"allocation"`
	StartingBalance     float64         `json:"starting_balance"`
	FirstYearWithdrawal float64         `json:"first_year_withdrawal"`
	YearsInRetirement   int             `json:"years_in_retirement"`
	InflationRatePct    float64         `json:"inflation_rate_pct"`
}

// Path is one simulated retirement lifetime: a trajectory of
// YearsInRetirement+1 non-negative balances (year 0 is the starting
// balance). Paths are ephemeral; the engine folds them into aggregation
// structures and discards them.
type Path struct {
	Balances     []float64
	FinalBalance float64
	Succeeded    bool
}

// SimulatePath advances one path year by year: apply a sampled return,
// subtract the inflating withdrawal, floor at zero. Depletion is
// permanent: once the balance hits zero it earns no further returns and
// never recovers.
func SimulatePath(params Parameters, sampler ReturnSampler) Path {
	balances := make([]float64, 0, params.YearsInRetirement+1)
	balance := params.StartingBalance
	withdrawal := params.FirstYearWithdrawal

	balances = append(balances, balance)
	for year := 1; year <= params.YearsInRetirement; year++ {
		if balance > 0 {
			ret := sampler.BlendedReturn(params.Allocation)
			balance *= 1 + ret
			balance -= withdrawal
			if balance < 0 {
				balance = 0
			}
		}
		balances = append(balances, balance)
		withdrawal *= 1 + params.InflationRatePct/100
	}

	return Path{
		Balances:     balances,
		FinalBalance: balance,
		Succeeded:    balance > 0,
	}
}
