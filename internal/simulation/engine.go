package simulation

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// seedFunc returns a pseudo-random seed (override for deterministic tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// Engine runs Monte Carlo retirement simulations. Path simulation within a
// run is sequential; the engine owns all working data for the duration of
// a run and shares nothing mutable with the caller.
type Engine struct {
	sampler ReturnSampler
	logger  Logger

	// progressChunk is the number of iterations between progress
	// callbacks; zero means iterations/100.
	progressChunk int
}

// NewEngine creates an engine with the default normal-distribution
// sampler.
func NewEngine() *Engine {
	return &Engine{
		sampler: NewNormalSampler(seedFunc()),
		logger:  NopLogger{},
	}
}

// NewEngineWithSampler creates an engine using the given sampler. Tests
// use this to substitute deterministic samplers.
func NewEngineWithSampler(sampler ReturnSampler) *Engine {
	return &Engine{
		sampler: sampler,
		logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op
// default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// SetProgressChunk overrides how many iterations complete between
// progress callbacks. The default (iterations/100) caps the stream at
// roughly 100 notifications per run.
func (e *Engine) SetProgressChunk(n int) {
	e.progressChunk = n
}

// Run executes the full simulation synchronously and returns aggregated
// results. onProgress, if non-nil, receives integer percentages in
// strictly increasing order. Run returns ctx.Err() if cancelled;
// cancellation is checked at progress-chunk boundaries.
func (e *Engine) Run(ctx context.Context, params Parameters, onProgress func(pct int)) (*Results, error) {
	if params.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", params.Iterations)
	}
	if params.YearsInRetirement < 0 {
		return nil, fmt.Errorf("years in retirement cannot be negative, got %d", params.YearsInRetirement)
	}

	chunk := e.progressChunk
	if chunk <= 0 {
		chunk = params.Iterations / 100
	}
	if chunk < 1 {
		chunk = 1
	}

	e.logger.Debugf("simulation start: %d iterations, %d years", params.Iterations, params.YearsInRetirement)

	// Year-major aggregation: balancesByYear[y] collects the balance at
	// year y across every path. Paths themselves are discarded as they
	// complete, so nothing O(iterations x years) outlives these slices.
	years := params.YearsInRetirement
	balancesByYear := make([][]float64, years+1)
	for y := range balancesByYear {
		balancesByYear[y] = make([]float64, 0, params.Iterations)
	}
	finalBalances := make([]float64, 0, params.Iterations)
	successes := 0

	lastPct := -1
	for i := 0; i < params.Iterations; i++ {
		path := SimulatePath(params, e.sampler)
		for y, balance := range path.Balances {
			balancesByYear[y] = append(balancesByYear[y], balance)
		}
		finalBalances = append(finalBalances, path.FinalBalance)
		if path.Succeeded {
			successes++
		}

		done := i + 1
		if done%chunk == 0 {
			if err := ctx.Err(); err != nil {
				e.logger.Infof("simulation cancelled after %d iterations", done)
				return nil, err
			}
			if pct := 100 * done / params.Iterations; pct > lastPct && pct < 100 && onProgress != nil {
				onProgress(pct)
				lastPct = pct
			}
		}
	}

	sort.Float64s(finalBalances)

	results := &Results{
		Iterations:         params.Iterations,
		YearsInRetirement:  years,
		SuccessRatePct:     100 * float64(successes) / float64(params.Iterations),
		MedianFinalBalance: percentileSorted(finalBalances, 50),
		WorstCase:          percentileSorted(finalBalances, 5),
		BestCase:           percentileSorted(finalBalances, 95),
		PercentileBands:    computeBands(balancesByYear),
		FinalBalances:      finalBalances,
	}

	e.logger.Debugf("simulation complete: success rate %.2f%%", results.SuccessRatePct)
	return results, nil
}

// computeBands sorts each year's cross-path balances and extracts the
// five percentile bands.
func computeBands(balancesByYear [][]float64) PercentileBands {
	n := len(balancesByYear)
	bands := PercentileBands{
		P5:  make([]float64, n),
		P25: make([]float64, n),
		P50: make([]float64, n),
		P75: make([]float64, n),
		P95: make([]float64, n),
	}
	for y, balances := range balancesByYear {
		sort.Float64s(balances)
		bands.P5[y] = percentileSorted(balances, 5)
		bands.P25[y] = percentileSorted(balances, 25)
		bands.P50[y] = percentileSorted(balances, 50)
		bands.P75[y] = percentileSorted(balances, 75)
		bands.P95[y] = percentileSorted(balances, 95)
	}
	return bands
}
