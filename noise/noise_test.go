package noise

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-pta/pta"
)

func uniformTOAs(n int, tspan float64) []float64 {
	toas := make([]float64, n)
	dt := tspan / float64(n)
	for i := range toas {
		toas[i] = float64(i) * dt
	}
	return toas
}

func testPulsars(n int, tspan float64) []pta.Pulsar {
	toas := uniformTOAs(n, tspan)
	return []pta.Pulsar{
		{Name: "J1", TOAs: toas, Residuals: make([]float64, n), Pos: [3]float64{1, 0, 0}},
		{Name: "J2", TOAs: toas, Residuals: make([]float64, n), Pos: [3]float64{0, 1, 0}},
	}
}

func TestFourierBasisOrthogonality(t *testing.T) {
	// On a uniform grid with integer-cycle frequencies the sine/cosine
	// columns obey exact DFT orthogonality: FᵀF = (n/2)·I.
	n, nf := 64, 8
	tspan := 6.4e7
	f, freqs := FourierBasis(uniformTOAs(n, tspan), nf, tspan)

	if r, c := f.Dims(); r != n || c != 2*nf {
		t.Fatalf("basis shape mismatch: %dx%d", r, c)
	}
	if len(freqs) != 2*nf || freqs[0] != freqs[1] || freqs[0] != 1/tspan {
		t.Fatalf("frequency labels mismatch: %v", freqs[:4])
	}

	var ftf mat.Dense
	ftf.Mul(f.T(), f)
	for i := 0; i < 2*nf; i++ {
		for j := 0; j < 2*nf; j++ {
			want := 0.0
			if i == j {
				want = float64(n) / 2
			}
			if math.Abs(ftf.At(i, j)-want) > 1e-8 {
				t.Fatalf("FtF[%d,%d] = %v, want %v", i, j, ftf.At(i, j), want)
			}
		}
	}
}

func TestNewArrayValidation(t *testing.T) {
	if _, err := NewArray(nil, DefaultArrayConfig()); !errors.Is(err, ErrNoPulsars) {
		t.Fatalf("expected ErrNoPulsars, got %v", err)
	}

	psrs := testPulsars(32, 1e8)
	if _, err := NewArray(psrs, ArrayConfig{NumFreqs: 0}); !errors.Is(err, ErrNoFreqs) {
		t.Fatalf("expected ErrNoFreqs, got %v", err)
	}

	bad := testPulsars(32, 1e8)
	bad[1].Residuals = bad[1].Residuals[:10]
	if _, err := NewArray(bad, ArrayConfig{NumFreqs: 4}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestParamOrderAndMapParams(t *testing.T) {
	model, err := NewArray(testPulsars(32, 1e8), ArrayConfig{NumFreqs: 4, Tspan: 1e8})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	names := model.ParamNames()
	want := []string{"J1_efac", "J2_efac", "gw_log10_A", "gw_gamma"}
	if len(names) != len(want) {
		t.Fatalf("param count mismatch: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("param order mismatch: got %v", names)
		}
	}

	params := model.MapParams([]float64{1, 1.5, -14, 4})
	if params["J2_efac"] != 1.5 || params["gw_log10_A"] != -14 {
		t.Fatalf("MapParams mismatch: %v", params)
	}

	// Short vectors map only their prefix.
	short := model.MapParams([]float64{2})
	if len(short) != 1 || short["J1_efac"] != 2 {
		t.Fatalf("short MapParams mismatch: %v", short)
	}
}

func TestSignalsTagCommonProcess(t *testing.T) {
	model, err := NewArray(testPulsars(32, 1e8), ArrayConfig{NumFreqs: 4, Tspan: 1e8})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	sigs := model.Signals(0)
	if len(sigs) != 1 {
		t.Fatalf("expected a single signal, got %d", len(sigs))
	}
	if sigs[0].Name != SignalName || sigs[0].ID != SignalID {
		t.Fatalf("signal tags mismatch: %+v", sigs[0])
	}
	if len(sigs[0].Columns) != 8 || len(sigs[0].Freqs) != 8 {
		t.Fatalf("signal shape mismatch: %d columns, %d freqs", len(sigs[0].Columns), len(sigs[0].Freqs))
	}
}

func TestTNTScalesWithEfac(t *testing.T) {
	model, err := NewArray(testPulsars(64, 6.4e7), ArrayConfig{NumFreqs: 4, Tspan: 6.4e7, Sigma: 1e-7})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	unit := model.TNT(pta.ParamSet{"J1_efac": 1, "J2_efac": 1})
	doubled := model.TNT(pta.ParamSet{"J1_efac": 2, "J2_efac": 1})

	// Doubling EFAC quadruples the variance, so TNT shrinks by 4.
	n := unit[0].SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(unit[0].At(i, j)-4*doubled[0].At(i, j)) > 1e-6*math.Abs(unit[0].At(i, j))+1e-30 {
				t.Fatalf("TNT efac scaling mismatch at (%d,%d)", i, j)
			}
		}
	}

	// Second pulsar's EFAC untouched: TNT identical.
	if !mat.EqualApprox(unit[1], doubled[1], 0) {
		t.Fatalf("unrelated pulsar TNT changed")
	}
}

func TestPhiInvIsReciprocalSpectrum(t *testing.T) {
	model, err := NewArray(testPulsars(32, 1e8), ArrayConfig{NumFreqs: 4, Tspan: 1e8})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	params := pta.ParamSet{"J1_efac": 1, "J2_efac": 1, "gw_log10_A": -14, "gw_gamma": 4}
	phiinvs := model.PhiInv(params)
	if len(phiinvs) != 2 {
		t.Fatalf("expected one PhiInv per pulsar, got %d", len(phiinvs))
	}

	for _, pi := range phiinvs {
		if pi.Dense != nil || len(pi.Diag) != 8 {
			t.Fatalf("expected diagonal PhiInv of length 8: %+v", pi)
		}
		for _, v := range pi.Diag {
			if v <= 0 || math.IsInf(v, 0) {
				t.Fatalf("invalid PhiInv entry: %v", v)
			}
		}
	}

	// Larger amplitude means smaller inverse.
	louder := model.PhiInv(pta.ParamSet{"gw_log10_A": -13, "gw_gamma": 4})
	if louder[0].Diag[0] >= phiinvs[0].Diag[0] {
		t.Fatalf("PhiInv should shrink with amplitude")
	}
}

func TestNoiseSolveWeighting(t *testing.T) {
	model, err := NewArray(testPulsars(8, 8e6), ArrayConfig{NumFreqs: 2, Tspan: 8e6, Sigma: 1e-7})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	rhs := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	params := pta.ParamSet{"J1_efac": 1, "J2_efac": 1}

	// left == nil applies the inverse covariance alone.
	got := model.NoiseSolve(0, params, rhs, nil)
	for i := 0; i < 8; i++ {
		want := rhs.At(i, 0) / 1e-14
		if math.Abs(got.At(i, 0)-want) > 1e-6*want {
			t.Fatalf("NoiseSolve weighting mismatch at %d: got %v want %v", i, got.At(i, 0), want)
		}
	}
}
