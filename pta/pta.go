package pta

import "gonum.org/v1/gonum/mat"

// Pulsar is one pulsar's contribution to the timing dataset: its timing
// residuals, observation epochs, and sky position. Inputs are treated as
// immutable once handed to a model.
type Pulsar struct {
	Name      string
	TOAs      []float64  // observation epochs in seconds
	Residuals []float64  // timing residuals in seconds, aligned with TOAs
	Pos       [3]float64 // unit vector pointing at the pulsar
}

// ParamSet maps parameter names to values.
type ParamSet map[string]float64

// Clone returns a shallow copy of the set. Cloning a nil set returns an
// empty, non-nil set.
func (p ParamSet) Clone() ParamSet {
	out := make(ParamSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Prior draws random values for a model parameter. The distributions in
// gonum's stat/distuv package satisfy this interface.
type Prior interface {
	Rand() float64
}

// Param is one named model parameter together with its prior.
type Param struct {
	Name  string
	Prior Prior
}

// PhiInv is the inverse prior covariance of the common process for a single
// pulsar. Exactly one of the fields is set: Diag for a diagonal inverse,
// Dense for a full matrix.
type PhiInv struct {
	Diag  []float64
	Dense *mat.SymDense
}

// SignalInfo describes one signal term contributing columns to a pulsar's
// basis matrix. Name and ID tag the physical process ("red noise"/"gw" for
// the common gravitational-wave process); Columns are the indices of the
// term's columns in the full basis matrix. For Fourier bases, Freqs carries
// the frequency label of each column (sine/cosine pairs repeat a frequency).
type SignalInfo struct {
	Name    string
	ID      string
	Columns []int
	Freqs   []float64
}

// Model is the capability interface of a fitted joint noise model over an
// ordered pulsar array. All methods take a parameter assignment and must
// treat it as read-only; implementations may memoize internally.
//
// Matrix and slice return values are owned by the model and must not be
// modified by callers.
type Model interface {
	// Pulsars returns the ordered pulsar list the model was built from.
	Pulsars() []Pulsar

	// Params returns the declared model parameters in their canonical order.
	Params() []Param

	// ParamNames returns the names of Params in the same order.
	ParamNames() []string

	// MapParams maps a flat vector to a named assignment following the
	// canonical parameter order. A short vector maps only its prefix.
	MapParams(vec []float64) ParamSet

	// Signals lists the signal terms of pulsar psr and their basis columns.
	Signals(psr int) []SignalInfo

	// Basis returns the full basis matrix T of pulsar psr.
	Basis(psr int, params ParamSet) *mat.Dense

	// Residuals returns the delay-corrected timing residuals of pulsar psr.
	Residuals(psr int, params ParamSet) []float64

	// NoiseSolve returns the noise-weighted product leftᵀ·N⁻¹·rhs for pulsar
	// psr, where N is the pulsar's white-noise covariance. A nil left yields
	// N⁻¹·rhs.
	NoiseSolve(psr int, params ParamSet, rhs, left mat.Matrix) *mat.Dense

	// TNr returns the per-pulsar products Tᵀ·N⁻¹·r.
	TNr(params ParamSet) []*mat.VecDense

	// TNT returns the per-pulsar products Tᵀ·N⁻¹·T.
	TNT(params ParamSet) []*mat.SymDense

	// PhiInv returns the per-pulsar inverse prior covariance of the common
	// process.
	PhiInv(params ParamSet) []PhiInv

	// WhiteParams, BasisParams and DelayParams list which parameter names
	// affect white-noise covariances, basis matrices and deterministic
	// delays respectively. They drive cache-key selection in consumers.
	WhiteParams() []string
	BasisParams() []string
	DelayParams() []string
}
