package optstat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-pta/pta"
)

// The F-weighted products below are memoized on the parameter subset they
// actually depend on: FNr on white-noise and delay parameters, FNF on
// white-noise parameters only, FNT on white-noise and basis parameters.
// Keying on the minimal subset keeps the hit rate high while a
// marginalization run sweeps the common-process parameters. TNr and TNT
// delegate to the model, which owns its own memoization.

// fnr returns the per-pulsar products Fᵀ·N⁻¹·r.
func (o *OptimalStatistic) fnr(params pta.ParamSet) [][]float64 {
	key := cacheKey(params, o.fnrKeys)
	if v, ok := o.cache.fnr[key]; ok {
		return v
	}

	out := make([][]float64, len(o.fmats))
	for i, f := range o.fmats {
		res := o.model.Residuals(i, params)
		rhs := mat.NewDense(len(res), 1, append([]float64(nil), res...))
		prod := o.model.NoiseSolve(i, params, rhs, f)
		k, _ := prod.Dims()
		v := make([]float64, k)
		for j := range v {
			v[j] = prod.At(j, 0)
		}
		out[i] = v
	}
	o.cache.fnr[key] = out
	return out
}

// fnf returns the per-pulsar products Fᵀ·N⁻¹·F.
func (o *OptimalStatistic) fnf(params pta.ParamSet) []*mat.Dense {
	key := cacheKey(params, o.whiteKeys)
	if v, ok := o.cache.fnf[key]; ok {
		return v
	}

	out := make([]*mat.Dense, len(o.fmats))
	for i, f := range o.fmats {
		out[i] = o.model.NoiseSolve(i, params, f, f)
	}
	o.cache.fnf[key] = out
	return out
}

// fnt returns the per-pulsar products Fᵀ·N⁻¹·T against the full basis.
func (o *OptimalStatistic) fnt(params pta.ParamSet) []*mat.Dense {
	key := cacheKey(params, o.fntKeys)
	if v, ok := o.cache.fnt[key]; ok {
		return v
	}

	out := make([]*mat.Dense, len(o.fmats))
	for i, f := range o.fmats {
		t := o.model.Basis(i, params)
		out[i] = o.model.NoiseSolve(i, params, t, f)
	}
	o.cache.fnt[key] = out
	return out
}
