// Package testutil provides shared fixtures for the analysis package tests:
// uniform observation grids, sky positions, and numeric assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pta/pta"
)

// Positions is a set of well-separated unit sky vectors for test arrays.
var Positions = [][3]float64{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{0.6, 0.8, 0},
}

// UniformTOAs returns n evenly spaced observation epochs covering [0, tspan).
// On this grid the Fourier basis with integer-cycle frequencies is exactly
// orthogonal, which several tests rely on.
func UniformTOAs(n int, tspan float64) []float64 {
	toas := make([]float64, n)
	dt := tspan / float64(n)
	for i := range toas {
		toas[i] = float64(i) * dt
	}
	return toas
}

// QuietPulsars builds npsr pulsars with zero residuals on a shared uniform
// grid, using [Positions] for the sky locations.
func QuietPulsars(npsr, n int, tspan float64) []pta.Pulsar {
	toas := UniformTOAs(n, tspan)
	psrs := make([]pta.Pulsar, npsr)
	for i := range psrs {
		psrs[i] = pta.Pulsar{
			Name:      "J" + string(rune('1'+i)),
			TOAs:      toas,
			Residuals: make([]float64, n),
			Pos:       Positions[i],
		}
	}
	return psrs
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}
