package optstat

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-pta/orf"
	"github.com/cwbudde/algo-pta/psd"
	"github.com/cwbudde/algo-pta/pta"
)

// Errors returned by the optimal statistic.
var (
	ErrMissingBasis  = errors.New("optstat: pulsar has no common-process basis signal")
	ErrTooFewPulsars = errors.New("optstat: at least two pulsars required")
)

// Result holds one optimal-statistic evaluation. The pairwise slices are
// ordered lexicographically over pulsar indices (i<j, i ascending outer) and
// have length P(P-1)/2 for P pulsars.
type Result struct {
	Separations []float64 // angular separation per pair, radians
	Rho         []float64 // correlation coefficient per pair, units of A²
	Sigma       []float64 // 1-sigma uncertainty on Rho per pair
	ORF         []float64 // overlap reduction function value per pair

	OS      float64 // aggregate statistic, units of A²
	OSSigma float64 // 1-sigma uncertainty on OS
}

// SNR returns the signal-to-noise ratio OS / OSSigma. It is always derived,
// never stored.
func (r *Result) SNR() float64 {
	return r.OS / r.OSSigma
}

// OptimalStatistic computes the frequentist cross-correlation estimator of a
// common stochastic process over a pulsar array.
//
// An instance owns parameter-keyed caches of noise-weighted products and is
// not safe for concurrent use with distinct parameter assignments.
type OptimalStatistic struct {
	model pta.Model
	cfg   Config
	orf   orf.Func

	fmats []*mat.Dense // common-process basis per pulsar
	freqs []float64
	pos   [][3]float64

	cache *productCache

	// Sorted parameter-name subsets driving cache keys.
	whiteKeys, fnrKeys, fntKeys []string
}

// New builds the estimator over a fitted noise model. The common-process
// basis and frequency grid are extracted once here; an unrecognized ORF
// name or a pulsar without a tagged common-process signal is a fatal
// construction error.
func New(model pta.Model, opts ...Option) (*OptimalStatistic, error) {
	cfg := ApplyOptions(opts...)
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if len(model.Pulsars()) < 2 {
		return nil, ErrTooFewPulsars
	}

	orfFunc, err := orf.ByName(cfg.ORF)
	if err != nil {
		return nil, err
	}

	fmats, freqs, err := selectCommonBasis(model)
	if err != nil {
		return nil, err
	}

	pos := make([][3]float64, len(model.Pulsars()))
	for i, p := range model.Pulsars() {
		pos[i] = p.Pos
	}

	return &OptimalStatistic{
		model:     model,
		cfg:       cfg,
		orf:       orfFunc,
		fmats:     fmats,
		freqs:     freqs,
		pos:       pos,
		cache:     newProductCache(),
		whiteKeys: sortedCopy(model.WhiteParams()),
		fnrKeys:   sortedCopy(append(append([]string(nil), model.WhiteParams()...), model.DelayParams()...)),
		fntKeys:   sortedCopy(append(append([]string(nil), model.WhiteParams()...), model.BasisParams()...)),
	}, nil
}

// Freqs returns the shared frequency grid of the common-process basis.
func (o *OptimalStatistic) Freqs() []float64 { return o.freqs }

// Compute evaluates the optimal statistic at the given parameter assignment.
//
// A nil assignment samples every model parameter from its prior. An
// assignment missing a model parameter triggers a warning and a random
// substitute drawn from the parameter's prior; the call still succeeds.
// This best-effort policy mirrors the behavior of established PTA analysis
// pipelines and leaves the statistical validity of the result to the caller.
func (o *OptimalStatistic) Compute(params pta.ParamSet) (*Result, error) {
	params = o.resolveParams(params)

	tnrs := o.model.TNr(params)
	tnts := o.model.TNT(params)
	fnrs := o.fnr(params)
	fnfs := o.fnf(params)
	fnts := o.fnt(params)
	phiinvs := o.model.PhiInv(params)

	npsr := len(o.pos)
	xs := make([][]float64, npsr)
	zs := make([]*mat.Dense, npsr)
	for i := 0; i < npsr; i++ {
		x, z, err := whiten(tnrs[i], tnts[i], fnrs[i], fnfs[i], fnts[i], phiinvs[i])
		if err != nil {
			return nil, err
		}
		xs[i] = x
		zs[i] = z
	}

	shape := o.spectralShape(params)

	npair := npsr * (npsr - 1) / 2
	res := &Result{
		Separations: make([]float64, 0, npair),
		Rho:         make([]float64, 0, npair),
		Sigma:       make([]float64, 0, npair),
		ORF:         make([]float64, 0, npair),
	}

	scratch := make([]float64, len(shape))
	var sumNum, sumDen float64
	for i := 0; i < npsr; i++ {
		for j := i + 1; j < npsr; j++ {
			vecmath.MulBlock(scratch, shape, xs[j])
			num := vecmath.DotProduct(xs[i], scratch)
			den := pairDenominator(zs[i], zs[j], shape, scratch)

			rho := num / den
			sig := 1 / math.Sqrt(den)
			g := o.orf(o.pos[i], o.pos[j])

			res.Rho = append(res.Rho, rho)
			res.Sigma = append(res.Sigma, sig)
			res.ORF = append(res.ORF, g)
			res.Separations = append(res.Separations, orf.AngularSeparation(o.pos[i], o.pos[j]))

			sumNum += rho * g / (sig * sig)
			sumDen += g * g / (sig * sig)
		}
	}

	res.OS = sumNum / sumDen
	res.OSSigma = 1 / math.Sqrt(sumDen)
	return res, nil
}

// resolveParams returns a complete assignment: nil samples everything from
// the priors, otherwise missing parameters are warned about and substituted
// with prior draws.
func (o *OptimalStatistic) resolveParams(params pta.ParamSet) pta.ParamSet {
	if params == nil {
		out := make(pta.ParamSet)
		for _, p := range o.model.Params() {
			if p.Prior != nil {
				out[p.Name] = p.Prior.Rand()
			}
		}
		return out
	}

	out := params.Clone()
	for _, p := range o.model.Params() {
		if _, ok := out[p.Name]; ok {
			continue
		}
		o.cfg.Logger.Warn("optstat: parameter not in assignment, drawing a random value",
			"param", p.Name)
		if p.Prior != nil {
			out[p.Name] = p.Prior.Rand()
		}
	}
	return out
}

// spectralShape builds the unit-amplitude power-law template over the shared
// frequency grid. With VaryGamma set, the spectral index comes from the
// assignment and falls back to the configured value when absent.
func (o *OptimalStatistic) spectralShape(params pta.ParamSet) []float64 {
	gamma := o.cfg.Gamma
	if o.cfg.VaryGamma {
		if v, ok := params[o.cfg.GammaParam]; ok {
			gamma = v
		}
	}
	return psd.Powerlaw(o.freqs, 0, gamma, 2)
}

// whiten forms Sigma = TNT + phiinv, solves it against TNr and FNTᵀ, and
// returns the per-pulsar quantities
//
//	X = FNr - FNT·Sigma⁻¹·TNr
//	Z = FNF - FNT·Sigma⁻¹·FNTᵀ
func whiten(tnr *mat.VecDense, tnt *mat.SymDense, fnr []float64, fnf, fnt *mat.Dense, phiinv pta.PhiInv) ([]float64, *mat.Dense, error) {
	n := tnt.SymmetricDim()
	sigma := mat.NewSymDense(n, nil)
	if phiinv.Dense != nil {
		sigma.AddSym(tnt, phiinv.Dense)
	} else {
		sigma.CopySym(tnt)
		for i, v := range phiinv.Diag {
			sigma.SetSym(i, i, sigma.At(i, i)+v)
		}
	}

	sigmaTNr, sigmaFNT, err := solveSigma(sigma, tnr, fnt)
	if err != nil {
		return nil, nil, err
	}

	var xv mat.VecDense
	xv.MulVec(fnt, sigmaTNr)
	x := make([]float64, len(fnr))
	for i := range x {
		x[i] = fnr[i] - xv.AtVec(i)
	}

	var z mat.Dense
	z.Mul(fnt, sigmaFNT)
	z.Sub(fnf, &z)

	return x, &z, nil
}

// solveSigma solves Sigma against both right-hand sides. Cholesky
// factorization is attempted first; when Sigma is not positive-definite the
// solve falls back to a general dense method. A near-singular condition in
// the fallback is tolerated; any other fallback failure is fatal.
func solveSigma(sigma *mat.SymDense, tnr *mat.VecDense, fnt *mat.Dense) (*mat.VecDense, *mat.Dense, error) {
	var chol mat.Cholesky
	if chol.Factorize(sigma) {
		var v mat.VecDense
		var m mat.Dense
		if err := chol.SolveVecTo(&v, tnr); err == nil {
			if err := chol.SolveTo(&m, fnt.T()); err == nil {
				return &v, &m, nil
			}
		}
	}

	var v mat.VecDense
	if err := v.SolveVec(sigma, tnr); err != nil && !isCondition(err) {
		return nil, nil, fmt.Errorf("optstat: sigma solve failed: %w", err)
	}
	var m mat.Dense
	if err := m.Solve(sigma, fnt.T()); err != nil && !isCondition(err) {
		return nil, nil, fmt.Errorf("optstat: sigma solve failed: %w", err)
	}
	return &v, &m, nil
}

func isCondition(err error) bool {
	var cond mat.Condition
	return errors.As(err, &cond)
}

// pairDenominator computes trace((Z_i ⊙ shape)·(Z_j ⊙ shape)), where ⊙
// scales each column k by shape_k. Z is symmetric, so the trace reduces to
//
//	Σ_{a,k} Zi[a,k]·Zj[a,k]·shape_a·shape_k
//
// and the matrix product is never formed: row a of the elementwise product
// is dotted with the shape and weighted by shape_a.
func pairDenominator(zi, zj *mat.Dense, shape, scratch []float64) float64 {
	r, _ := zi.Dims()
	var sum float64
	for a := 0; a < r; a++ {
		vecmath.MulBlock(scratch, zi.RawRowView(a), zj.RawRowView(a))
		sum += shape[a] * vecmath.DotProduct(scratch, shape)
	}
	return sum
}
