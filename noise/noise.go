package noise

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-pta/psd"
	"github.com/cwbudde/algo-pta/pta"
)

// Errors returned by model construction.
var (
	ErrNoPulsars      = errors.New("noise: at least one pulsar required")
	ErrNoFreqs        = errors.New("noise: number of frequencies must be positive")
	ErrEmptyPulsar    = errors.New("noise: pulsar has no observations")
	ErrLengthMismatch = errors.New("noise: residual and TOA lengths differ")
)

// Common-process signal tags, matching the convention of the optimal
// statistic's basis selector.
const (
	SignalName = "red noise"
	SignalID   = "gw"
)

// Default parameter values used when an assignment omits the common-process
// parameters entirely.
const (
	defaultLog10A = -15
	defaultGamma  = 13.0 / 3.0
)

// ArrayConfig holds construction parameters for the reference array model.
type ArrayConfig struct {
	NumFreqs int     // Fourier frequencies of the common process
	Tspan    float64 // observation span in seconds; 0 infers it from the TOAs
	Sigma    float64 // base white-noise RMS per observation in seconds
}

// DefaultArrayConfig returns sensible defaults: 30 frequencies and a
// 100 ns base white-noise level.
func DefaultArrayConfig() ArrayConfig {
	return ArrayConfig{
		NumFreqs: 30,
		Sigma:    1e-7,
	}
}

// Array is a minimal joint noise model over a pulsar array: per-pulsar
// white noise with an EFAC scale parameter, plus a common power-law
// red-noise process on a shared Fourier basis. It implements [pta.Model].
//
// The model is intentionally simple; it exists so the optimal-statistic
// engine can run end to end without an external fitted model, and it
// doubles as a closed-form fixture for validation.
type Array struct {
	cfg    ArrayConfig
	psrs   []pta.Pulsar
	fmats  []*mat.Dense // Fourier design matrix per pulsar
	ftf    []*mat.SymDense
	freqs  []float64 // shared grid, each frequency repeated twice
	params []pta.Param
	names  []string
	white  []string
}

// NewArray builds the reference model over the given pulsars.
func NewArray(psrs []pta.Pulsar, cfg ArrayConfig) (*Array, error) {
	if len(psrs) == 0 {
		return nil, ErrNoPulsars
	}
	if cfg.NumFreqs <= 0 {
		return nil, ErrNoFreqs
	}
	if cfg.Sigma <= 0 {
		cfg.Sigma = DefaultArrayConfig().Sigma
	}

	tspan := cfg.Tspan
	if tspan <= 0 {
		tspan = span(psrs)
	}

	a := &Array{
		cfg:   cfg,
		psrs:  psrs,
		fmats: make([]*mat.Dense, len(psrs)),
		ftf:   make([]*mat.SymDense, len(psrs)),
	}
	for i, p := range psrs {
		if len(p.TOAs) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyPulsar, p.Name)
		}
		if len(p.Residuals) != len(p.TOAs) {
			return nil, fmt.Errorf("%w: %s", ErrLengthMismatch, p.Name)
		}
		f, freqs := FourierBasis(p.TOAs, cfg.NumFreqs, tspan)
		a.fmats[i] = f
		a.ftf[i] = gram(f)
		if i == 0 {
			a.freqs = freqs
		}
	}

	// Per-pulsar EFAC parameters first, common-process parameters last.
	for _, p := range psrs {
		a.params = append(a.params, pta.Param{
			Name:  p.Name + "_efac",
			Prior: distuv.Uniform{Min: 0.1, Max: 5},
		})
	}
	a.params = append(a.params,
		pta.Param{Name: "gw_log10_A", Prior: distuv.Uniform{Min: -18, Max: -11}},
		pta.Param{Name: "gw_gamma", Prior: distuv.Uniform{Min: 0, Max: 7}},
	)
	for _, p := range a.params {
		a.names = append(a.names, p.Name)
	}
	a.white = a.names[:len(psrs)]

	return a, nil
}

// Pulsars returns the ordered pulsar list.
func (a *Array) Pulsars() []pta.Pulsar { return a.psrs }

// Params returns the declared parameters in canonical order.
func (a *Array) Params() []pta.Param { return a.params }

// ParamNames returns the parameter names in canonical order.
func (a *Array) ParamNames() []string { return a.names }

// MapParams maps a flat vector onto the canonical parameter order. Extra
// vector entries are ignored; a short vector maps only its prefix.
func (a *Array) MapParams(vec []float64) pta.ParamSet {
	out := make(pta.ParamSet, len(a.names))
	for i, name := range a.names {
		if i >= len(vec) {
			break
		}
		out[name] = vec[i]
	}
	return out
}

// Signals describes the single common-process term of pulsar psr.
func (a *Array) Signals(psr int) []pta.SignalInfo {
	_, cols := a.fmats[psr].Dims()
	idx := make([]int, cols)
	for i := range idx {
		idx[i] = i
	}
	return []pta.SignalInfo{{
		Name:    SignalName,
		ID:      SignalID,
		Columns: idx,
		Freqs:   a.freqs,
	}}
}

// Basis returns the full basis matrix of pulsar psr. For this model the
// basis is the common-process Fourier matrix and does not depend on params.
func (a *Array) Basis(psr int, _ pta.ParamSet) *mat.Dense { return a.fmats[psr] }

// Residuals returns the timing residuals of pulsar psr. The model carries
// no deterministic delays, so params are ignored.
func (a *Array) Residuals(psr int, _ pta.ParamSet) []float64 {
	return a.psrs[psr].Residuals
}

// NoiseSolve returns leftᵀ·N⁻¹·rhs with N = (efac·σ)²·I for pulsar psr,
// or N⁻¹·rhs when left is nil.
func (a *Array) NoiseSolve(psr int, params pta.ParamSet, rhs, left mat.Matrix) *mat.Dense {
	w := 1 / a.variance(psr, params)
	var out mat.Dense
	if left == nil {
		out.Scale(w, rhs)
		return &out
	}
	out.Mul(left.T(), rhs)
	out.Scale(w, &out)
	return &out
}

// TNr returns the per-pulsar products Tᵀ·N⁻¹·r.
func (a *Array) TNr(params pta.ParamSet) []*mat.VecDense {
	out := make([]*mat.VecDense, len(a.psrs))
	for i, p := range a.psrs {
		rhs := mat.NewDense(len(p.Residuals), 1, append([]float64(nil), p.Residuals...))
		prod := a.NoiseSolve(i, params, rhs, a.fmats[i])
		k, _ := prod.Dims()
		v := mat.NewVecDense(k, nil)
		for j := 0; j < k; j++ {
			v.SetVec(j, prod.At(j, 0))
		}
		out[i] = v
	}
	return out
}

// TNT returns the per-pulsar products Tᵀ·N⁻¹·T.
func (a *Array) TNT(params pta.ParamSet) []*mat.SymDense {
	out := make([]*mat.SymDense, len(a.psrs))
	for i := range a.psrs {
		w := 1 / a.variance(i, params)
		n := a.ftf[i].SymmetricDim()
		s := mat.NewSymDense(n, nil)
		s.CopySym(a.ftf[i])
		s.ScaleSym(w, s)
		out[i] = s
	}
	return out
}

// PhiInv returns the inverse prior covariance of the common process,
// identical for every pulsar: the reciprocal of the power-law spectrum at
// the assignment's gw_log10_A and gw_gamma.
func (a *Array) PhiInv(params pta.ParamSet) []pta.PhiInv {
	log10A := paramOr(params, "gw_log10_A", defaultLog10A)
	gamma := paramOr(params, "gw_gamma", defaultGamma)

	phi := psd.Powerlaw(a.freqs, log10A, gamma, 2)
	inv := make([]float64, len(phi))
	for i, v := range phi {
		inv[i] = 1 / v
	}

	out := make([]pta.PhiInv, len(a.psrs))
	for i := range out {
		out[i] = pta.PhiInv{Diag: inv}
	}
	return out
}

// WhiteParams lists the EFAC parameter names.
func (a *Array) WhiteParams() []string { return a.white }

// BasisParams returns nil: the Fourier basis is parameter-free.
func (a *Array) BasisParams() []string { return nil }

// DelayParams returns nil: the model has no deterministic delays.
func (a *Array) DelayParams() []string { return nil }

// variance returns the white-noise variance (efac·σ)² of pulsar psr.
func (a *Array) variance(psr int, params pta.ParamSet) float64 {
	efac := paramOr(params, a.psrs[psr].Name+"_efac", 1)
	s := efac * a.cfg.Sigma
	return s * s
}

func paramOr(params pta.ParamSet, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}

// span returns the largest TOA range over all pulsars.
func span(psrs []pta.Pulsar) float64 {
	lo, hi := psrs[0].TOAs[0], psrs[0].TOAs[0]
	for _, p := range psrs {
		for _, t := range p.TOAs {
			if t < lo {
				lo = t
			}
			if t > hi {
				hi = t
			}
		}
	}
	return hi - lo
}

// gram computes FᵀF as a symmetric matrix.
func gram(f *mat.Dense) *mat.SymDense {
	_, k := f.Dims()
	var prod mat.Dense
	prod.Mul(f.T(), f)
	s := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			s.SetSym(i, j, prod.At(i, j))
		}
	}
	return s
}
