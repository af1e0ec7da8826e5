package simulation

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEngineDepletionReporting(t *testing.T) {
	engine := NewEngineWithSampler(fixedSampler{ret: -0.25})

	params := testParams(30)
	params.Iterations = 500

	results, err := engine.Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if results.SuccessRatePct != 0 {
		t.Errorf("success rate = %v, want 0 when every path depletes", results.SuccessRatePct)
	}
	if results.WorstCase != 0 || results.BestCase != 0 {
		t.Errorf("worst/best case = %v/%v, want 0/0 for identically depleted paths",
			results.WorstCase, results.BestCase)
	}
	if results.MedianFinalBalance != 0 {
		t.Errorf("median final balance = %v, want 0", results.MedianFinalBalance)
	}
}

func TestEngineBandShapesAndOrdering(t *testing.T) {
	engine := NewEngineWithSampler(NewNormalSampler(42))

	params := testParams(20)
	params.Iterations = 2000

	results, err := engine.Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	bands := results.PercentileBands
	for _, band := range [][]float64{bands.P5, bands.P25, bands.P50, bands.P75, bands.P95} {
		if len(band) != params.YearsInRetirement+1 {
			t.Fatalf("band length = %d, want %d", len(band), params.YearsInRetirement+1)
		}
	}

	// Year 0 is the starting balance in every path, so every band pins
	// to it.
	for _, band := range [][]float64{bands.P5, bands.P25, bands.P50, bands.P75, bands.P95} {
		if band[0] != params.StartingBalance {
			t.Errorf("band year-0 value = %v, want %v", band[0], params.StartingBalance)
		}
	}

	// Bands must be ordered p5 <= p25 <= p50 <= p75 <= p95 at every year.
	for y := 0; y <= params.YearsInRetirement; y++ {
		if bands.P5[y] > bands.P25[y] || bands.P25[y] > bands.P50[y] ||
			bands.P50[y] > bands.P75[y] || bands.P75[y] > bands.P95[y] {
			t.Errorf("year %d bands out of order: %v %v %v %v %v",
				y, bands.P5[y], bands.P25[y], bands.P50[y], bands.P75[y], bands.P95[y])
		}
	}

	if results.WorstCase > results.MedianFinalBalance || results.MedianFinalBalance > results.BestCase {
		t.Errorf("final-balance stats out of order: worst %v median %v best %v",
			results.WorstCase, results.MedianFinalBalance, results.BestCase)
	}
}

func TestEngineFourPercentRuleScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical scenario in short mode")
	}

	engine := NewEngineWithSampler(NewNormalSampler(20260831))

	// The classic 4% rule study shape: $1M, $40k inflating at 3%,
	// 60/30/10 over 30 years. The exact rate is stochastic; assert a
	// sane band, not a literal.
	params := Parameters{
		Iterations:          100000,
		Allocation:          AssetAllocation{EquitiesPct: 60, BondsPct: 30, CashPct: 10},
		StartingBalance:     1000000,
		FirstYearWithdrawal: 40000,
		YearsInRetirement:   30,
		InflationRatePct:    3,
	}

	results, err := engine.Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if results.SuccessRatePct < 65 || results.SuccessRatePct > 100 {
		t.Errorf("4%% rule success rate = %.2f%%, want within plausible historical band", results.SuccessRatePct)
	}
	if results.BestCase < results.MedianFinalBalance {
		t.Errorf("best case %v below median %v", results.BestCase, results.MedianFinalBalance)
	}
}

func TestEngineSuccessRateStability(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical regression in short mode")
	}

	params := testParams(30)
	params.Iterations = 50000

	first, err := NewEngineWithSampler(NewNormalSampler(1)).Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := NewEngineWithSampler(NewNormalSampler(2)).Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if diff := math.Abs(first.SuccessRatePct - second.SuccessRatePct); diff > 5 {
		t.Errorf("success rates differ by %.2f points across identical runs, want sampling-noise bound", diff)
	}
}

func TestNewEngineSeedFuncDeterminism(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() int64 { return 42 })
	defer SetSeedFunc(orig)

	params := testParams(10)
	params.Iterations = 2000

	first, err := NewEngine().Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := NewEngine().Run(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first.SuccessRatePct != second.SuccessRatePct ||
		first.MedianFinalBalance != second.MedianFinalBalance ||
		first.BestCase != second.BestCase {
		t.Errorf("identically seeded engines diverged: %.4f/%.2f vs %.4f/%.2f",
			first.SuccessRatePct, first.MedianFinalBalance,
			second.SuccessRatePct, second.MedianFinalBalance)
	}
}

func TestEngineRejectsNonPositiveIterations(t *testing.T) {
	engine := NewEngine()

	params := testParams(10)
	params.Iterations = 0

	if _, err := engine.Run(context.Background(), params, nil); err == nil {
		t.Error("expected error for zero iterations")
	}
}

func TestEngineProgressOrdering(t *testing.T) {
	engine := NewEngineWithSampler(fixedSampler{ret: 0.05})

	params := testParams(5)
	params.Iterations = 10000

	var pcts []int
	_, err := engine.Run(context.Background(), params, func(pct int) {
		pcts = append(pcts, pct)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(pcts) == 0 {
		t.Fatal("expected progress callbacks")
	}
	if len(pcts) > 100 {
		t.Errorf("got %d progress callbacks, want at most ~100", len(pcts))
	}
	for i := 1; i < len(pcts); i++ {
		if pcts[i] <= pcts[i-1] {
			t.Fatalf("progress not strictly increasing: %v", pcts)
		}
	}
	if last := pcts[len(pcts)-1]; last > 100 {
		t.Errorf("final progress = %d, want <= 100", last)
	}
}

func TestSessionEventStream(t *testing.T) {
	session := NewSession(NewEngineWithSampler(NewNormalSampler(7)))

	params := testParams(10)
	params.Iterations = 5000

	runID, events := session.Start(context.Background(), params)

	var terminal []Event
	lastPct := -1
	for ev := range events {
		if ev.RunID != runID {
			t.Fatalf("event carries run ID %s, want %s", ev.RunID, runID)
		}
		switch ev.Kind {
		case EventProgress:
			if len(terminal) > 0 {
				t.Fatal("progress event delivered after terminal event")
			}
			if ev.PercentComplete <= lastPct {
				t.Fatalf("progress percentages not strictly increasing: %d after %d", ev.PercentComplete, lastPct)
			}
			lastPct = ev.PercentComplete
		case EventComplete, EventError:
			terminal = append(terminal, ev)
		}
	}

	if len(terminal) != 1 {
		t.Fatalf("got %d terminal events, want exactly 1", len(terminal))
	}
	if terminal[0].Kind != EventComplete {
		t.Fatalf("terminal event kind = %s, want complete: %s", terminal[0].Kind, terminal[0].Message)
	}
	if terminal[0].Results == nil {
		t.Fatal("complete event missing results")
	}
	if session.Active() != uuid.Nil && session.Active() != terminal[0].RunID {
		t.Errorf("session did not return to idle after completion")
	}
}

func TestSessionErrorEvent(t *testing.T) {
	session := NewSession(NewEngine())

	params := testParams(10)
	params.Iterations = -1

	runID, events := session.Start(context.Background(), params)

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want exactly one error event", len(got))
	}
	if got[0].Kind != EventError || got[0].RunID != runID {
		t.Errorf("unexpected terminal event %+v", got[0])
	}
}

// gateSampler blocks every draw until released, so tests can cancel a run
// that is deterministically mid-flight.
type gateSampler struct {
	started sync.Once
	ready   chan struct{}
	release chan struct{}
}

func newGateSampler() *gateSampler {
	return &gateSampler{ready: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateSampler) BlendedReturn(AssetAllocation) float64 {
	g.started.Do(func() { close(g.ready) })
	<-g.release
	return 0
}

func TestSessionCancellation(t *testing.T) {
	sampler := newGateSampler()
	engine := NewEngineWithSampler(sampler)
	engine.SetProgressChunk(1)
	session := NewSession(engine)

	params := testParams(1)
	params.Iterations = 100

	_, events := session.Start(context.Background(), params)

	<-sampler.ready
	session.Cancel()
	close(sampler.release)

	for ev := range events {
		if ev.Terminal() {
			t.Fatalf("cancelled run delivered terminal event %+v", ev)
		}
	}

	if session.Active() != uuid.Nil {
		t.Error("session should be idle after cancellation")
	}
}

// panicSampler blows up on the first draw.
type panicSampler struct{}

func (panicSampler) BlendedReturn(AssetAllocation) float64 { panic("sampler exploded") }

func TestSessionPanicEmitsSingleError(t *testing.T) {
	session := NewSession(NewEngineWithSampler(panicSampler{}))

	params := testParams(5)
	params.Iterations = 100

	runID, events := session.Start(context.Background(), params)

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want exactly one error event", len(got))
	}
	if got[0].Kind != EventError || got[0].RunID != runID {
		t.Errorf("unexpected terminal event %+v", got[0])
	}
}

// gatePanicSampler blocks the first draw until released, then panics, so
// tests can arrange a panic inside an already-cancelled run.
type gatePanicSampler struct {
	started sync.Once
	ready   chan struct{}
	release chan struct{}
}

func (g *gatePanicSampler) BlendedReturn(AssetAllocation) float64 {
	g.started.Do(func() { close(g.ready) })
	<-g.release
	panic("sampler exploded")
}

func TestSessionPanicAfterCancelStaysSilent(t *testing.T) {
	sampler := &gatePanicSampler{ready: make(chan struct{}), release: make(chan struct{})}
	session := NewSession(NewEngineWithSampler(sampler))

	params := testParams(1)
	params.Iterations = 100

	_, events := session.Start(context.Background(), params)

	<-sampler.ready
	session.Cancel()
	close(sampler.release)

	for ev := range events {
		t.Fatalf("cancelled run delivered event %+v", ev)
	}
}

func TestSessionSupersededRunSerializesEngineUse(t *testing.T) {
	// One stateful sampler shared through the engine: the superseded
	// goroutine must be fully stopped before the new run draws from it.
	session := NewSession(NewEngineWithSampler(NewNormalSampler(1)))

	params := testParams(5)
	params.Iterations = 20000

	_, firstEvents := session.Start(context.Background(), params)
	_, secondEvents := session.Start(context.Background(), params)

	select {
	case <-secondEvents:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the second run")
	}

	// The second run has emitted, so the first goroutine already exited
	// and its stream is closed; a receive can never block.
	select {
	case _, ok := <-firstEvents:
		for ok {
			_, ok = <-firstEvents
		}
	default:
		t.Fatal("first stream still open while the second run is underway")
	}

	for range secondEvents {
	}
}

func TestSessionSupersededRunKeepsIDsDistinct(t *testing.T) {
	session := NewSession(NewEngineWithSampler(fixedSampler{ret: 0.02}))

	params := testParams(5)
	params.Iterations = 2000

	firstID, firstEvents := session.Start(context.Background(), params)
	secondID, secondEvents := session.Start(context.Background(), params)

	if firstID == secondID {
		t.Fatal("superseding run did not get a fresh run ID")
	}

	// The first stream either completed before supersession or was
	// cancelled; either way every event it delivered must carry its own
	// run ID, and the channel must close.
	deadline := time.After(10 * time.Second)
	drain := func(id uuid.UUID, events <-chan Event) (terminals int) {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return terminals
				}
				if ev.RunID != id {
					t.Fatalf("stream for run %v delivered event for run %v", id, ev.RunID)
				}
				if ev.Terminal() {
					terminals++
				}
			case <-deadline:
				t.Fatal("timed out draining event stream")
			}
		}
	}

	if n := drain(firstID, firstEvents); n > 1 {
		t.Errorf("first run delivered %d terminal events, want at most 1", n)
	}
	if n := drain(secondID, secondEvents); n != 1 {
		t.Errorf("second run delivered %d terminal events, want exactly 1", n)
	}
}
