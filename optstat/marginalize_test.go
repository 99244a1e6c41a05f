package optstat

import (
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-pta/chain"
	"github.com/cwbudde/algo-pta/pta"
)

// testChain builds a chain over the model's parameters with the given
// log-likelihood per row. Parameter values vary the common-process
// amplitude row by row.
func testChain(t *testing.T, model pta.Model, loglikes []float64) *chain.Chain {
	t.Helper()
	names := model.ParamNames()
	rows := make([][]float64, len(loglikes))
	for i, ll := range loglikes {
		row := make([]float64, 0, len(names)+chain.AuxColumns)
		for _, name := range names {
			switch name {
			case "gw_log10_A":
				row = append(row, -15+0.5*float64(i))
			case "gw_gamma":
				row = append(row, 13.0/3.0)
			default:
				row = append(row, 1)
			}
		}
		row = append(row, ll, 0, 0.25, 0)
		rows[i] = row
	}
	c, err := chain.New(rows)
	if err != nil {
		t.Fatalf("chain.New failed: %v", err)
	}
	return c
}

func TestMarginalizedZeroDraws(t *testing.T) {
	model := testArray(t, 2, 64, 4, 1e8)
	os, err := New(model)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c := testChain(t, model, []float64{-10, -5})

	osVals, snrVals, err := os.Marginalized(c, nil, 0)
	if err != nil {
		t.Fatalf("Marginalized failed: %v", err)
	}
	if len(osVals) != 0 || len(snrVals) != 0 {
		t.Fatalf("N=0 must return empty slices: %d %d", len(osVals), len(snrVals))
	}
}

func TestMarginalizedDrawCountAndReproducibility(t *testing.T) {
	const n = 7

	run := func() ([]float64, []float64) {
		model := testArray(t, 2, 64, 4, 1e8)
		os, err := New(model, WithRand(rand.New(rand.NewPCG(12, 34))))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		c := testChain(t, model, []float64{-10, -5, -7})
		osVals, snrVals, err := os.Marginalized(c, nil, n)
		if err != nil {
			t.Fatalf("Marginalized failed: %v", err)
		}
		return osVals, snrVals
	}

	os1, snr1 := run()
	os2, snr2 := run()

	// More draws than chain rows: indices repeat, length stays exactly N.
	if len(os1) != n || len(snr1) != n {
		t.Fatalf("draw count mismatch: %d %d", len(os1), len(snr1))
	}

	for i := range os1 {
		if os1[i] != os2[i] || snr1[i] != snr2[i] {
			t.Fatalf("seeded runs disagree at draw %d: %v vs %v", i, os1[i], os2[i])
		}
	}
}

func TestMarginalizedSNRIdentity(t *testing.T) {
	model := testArray(t, 2, 64, 4, 1e8)
	os, err := New(model, WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c := testChain(t, model, []float64{-10, -5})

	osVals, snrVals, err := os.Marginalized(c, nil, 4)
	if err != nil {
		t.Fatalf("Marginalized failed: %v", err)
	}
	for i := range osVals {
		if osVals[i] == 0 && snrVals[i] == 0 {
			continue
		}
		if snrVals[i]*osVals[i] < 0 {
			t.Fatalf("draw %d: SNR and OS have inconsistent signs", i)
		}
	}
}

func TestMaximizedPicksMaxLikelihoodRow(t *testing.T) {
	model := testArray(t, 2, 64, 4, 1e8)
	os, err := New(model)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Row 1 has the maximum log-likelihood.
	c := testChain(t, model, []float64{-10, -2, -7})

	got, err := os.Maximized(c, nil)
	if err != nil {
		t.Fatalf("Maximized failed: %v", err)
	}

	want, err := os.Compute(model.MapParams(c.ParamRow(1)))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if got.OS != want.OS || got.OSSigma != want.OSSigma {
		t.Fatalf("Maximized did not evaluate the max-likelihood row: got %v want %v", got.OS, want.OS)
	}
	if got.SNR() != got.OS/got.OSSigma {
		t.Fatalf("SNR identity violated")
	}
}

func TestMaximizedWithExplicitNames(t *testing.T) {
	model := testArray(t, 2, 64, 4, 1e8)
	os, err := New(model)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c := testChain(t, model, []float64{-10, -2})

	viaNames, err := os.Maximized(c, model.ParamNames())
	if err != nil {
		t.Fatalf("Maximized failed: %v", err)
	}
	viaMapping, err := os.Maximized(c, nil)
	if err != nil {
		t.Fatalf("Maximized failed: %v", err)
	}
	if viaNames.OS != viaMapping.OS {
		t.Fatalf("explicit names and model mapping disagree: %v vs %v", viaNames.OS, viaMapping.OS)
	}
}

func TestChainShapeMismatchWarnsButProceeds(t *testing.T) {
	model := testArray(t, 2, 64, 4, 1e8)
	h := &countingHandler{}
	os, err := New(model, WithLogger(slog.New(h)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// One extra parameter column relative to the model.
	names := model.ParamNames()
	row := []float64{1, 1, -14, 13.0 / 3.0, 0.5, -10, 0, 0.25, 0}
	if len(row) != len(names)+1+chain.AuxColumns {
		t.Fatalf("test row shape wrong")
	}
	c, err := chain.New([][]float64{row})
	if err != nil {
		t.Fatalf("chain.New failed: %v", err)
	}

	if _, err := os.Maximized(c, nil); err != nil {
		t.Fatalf("shape mismatch must be non-fatal: %v", err)
	}
	if h.warnings == 0 {
		t.Fatalf("expected a chain-shape warning")
	}
}
