package simulation

import (
	"math"
	"math/rand"
)

// AssetAllocation splits a portfolio across three asset classes. The
// percentages are expected to sum to 100; that invariant is validated once
// by the caller before a simulation starts, not re-checked per draw.
type AssetAllocation struct {
	EquitiesPct float64 `json:"equities_pct"`
	BondsPct    float64 `json:"bonds_pct"`
	CashPct     float64 `json:"cash_pct"`
}

// classStats holds the annual arithmetic mean and standard deviation used
// for an asset class when sampling returns.
type classStats struct {
	mean   float64
	stdDev float64
}

// Long-run annual statistics per asset class.
var (
	equitiesStats = classStats{mean: 0.10, stdDev: 0.18}
	bondsStats    = classStats{mean: 0.05, stdDev: 0.06}
	cashStats     = classStats{mean: 0.02, stdDev: 0.01}
)

// ReturnSampler produces one blended portfolio return for one simulated
// year. Implementations must be total over any allocation.
type ReturnSampler interface {
	BlendedReturn(alloc AssetAllocation) float64
}

// NormalSampler samples each asset class independently from a normal
// distribution via the Box-Muller transform and blends by allocation
// weight. Cross-asset correlation is deliberately not modeled: real
// markets correlate (flight-to-safety), but independent draws are the
// documented modeling choice here.
type NormalSampler struct {
	rng *rand.Rand
}

// NewNormalSampler creates a sampler seeded from the given value.
func NewNormalSampler(seed int64) *NormalSampler {
	return &NormalSampler{rng: rand.New(rand.NewSource(seed))}
}

// BlendedReturn returns the weighted portfolio return for one year.
func (s *NormalSampler) BlendedReturn(alloc AssetAllocation) float64 {
	equities := s.sampleClass(equitiesStats)
	bonds := s.sampleClass(bondsStats)
	cash := s.sampleClass(cashStats)

	return alloc.EquitiesPct/100*equities +
		alloc.BondsPct/100*bonds +
		alloc.CashPct/100*cash
}

// sampleClass draws one normal variate scaled to the class statistics.
func (s *NormalSampler) sampleClass(stats classStats) float64 {
	z := boxMuller(s.uniform(), s.uniform())
	return stats.mean + z*stats.stdDev
}

// uniform draws from (0,1), excluding 0 so log(u1) is always defined.
func (s *NormalSampler) uniform() float64 {
	for {
		u := s.rng.Float64()
		if u > 0 {
			return u
		}
	}
}

// boxMuller converts two independent uniform draws into one standard
// normal variate.
func boxMuller(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
