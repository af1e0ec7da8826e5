package simulation

import (
	"math"
	"testing"
)

func TestPercentileKnownValues(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	cases := []struct {
		name string
		p    float64
		want float64
	}{
		{"p0", 0, 10},
		{"p25", 25, 20},
		{"p50", 50, 30},
		{"p100", 100, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentile(values, tc.p)
			if got != tc.want {
				t.Errorf("Percentile(%v, %v) = %v, want %v", values, tc.p, got, tc.want)
			}
		})
	}
}

func TestPercentileInterpolation(t *testing.T) {
	values := []float64{10, 20}

	// idx = 0.5, halfway between the two order statistics
	got := Percentile(values, 50)
	if math.Abs(got-15) > 1e-9 {
		t.Errorf("Percentile([10 20], 50) = %v, want 15", got)
	}

	// idx = 0.1
	got = Percentile(values, 10)
	if math.Abs(got-11) > 1e-9 {
		t.Errorf("Percentile([10 20], 10) = %v, want 11", got)
	}
}

func TestPercentileUnsortedInput(t *testing.T) {
	values := []float64{50, 10, 40, 20, 30}

	if got := Percentile(values, 50); got != 30 {
		t.Errorf("Percentile on unsorted input = %v, want 30", got)
	}

	// Input must not be reordered.
	if values[0] != 50 || values[4] != 30 {
		t.Errorf("Percentile modified its input: %v", values)
	}
}

func TestPercentileEmptyAndSingle(t *testing.T) {
	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("Percentile(nil, 50) = %v, want 0", got)
	}
	if got := Percentile([]float64{42}, 95); got != 42 {
		t.Errorf("Percentile([42], 95) = %v, want 42", got)
	}
}
