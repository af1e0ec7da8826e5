package simulation

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile of values (p in [0,100]) using
// linear interpolation between order statistics. The input is not
// modified. An empty input returns 0; callers are expected never to ask
// for a percentile of an empty set.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

// percentileSorted is the hot-loop variant: it requires values sorted
// ascending and performs no copy.
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := p / 100 * float64(n-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
