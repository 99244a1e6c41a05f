package simulate

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-pta/noise"
	"github.com/cwbudde/algo-pta/orf"
	"github.com/cwbudde/algo-pta/psd"
	"github.com/cwbudde/algo-pta/pta"
)

// Errors returned by the generators.
var (
	ErrInvalidLength  = errors.New("simulate: length must be positive")
	ErrInvalidSpacing = errors.New("simulate: sample spacing must be positive")
	ErrNoFreqs        = errors.New("simulate: number of frequencies must be positive")
	ErrORFNotPosDef   = errors.New("simulate: overlap-reduction matrix is not positive-definite")
)

// PowerlawNoise synthesizes a zero-mean Gaussian time series of length n
// with sample spacing dt and a one-sided power-law PSD
//
//	S(f) = A² / (12 π²) · Fyr^(γ-3) · f^(-γ)
//
// via frequency-domain synthesis and an inverse FFT: each positive bin gets
// an independent complex Gaussian amplitude with variance set by the PSD,
// the spectrum is made Hermitian, and the real transform is returned.
func PowerlawNoise(n int, dt, log10A, gamma float64, rng *rand.Rand) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	if dt <= 0 {
		return nil, ErrInvalidSpacing
	}

	size := nextPowerOf2(n)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("simulate: failed to create FFT plan: %w", err)
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	a := math.Pow(10, log10A)
	psdNorm := a * a / (12 * math.Pi * math.Pi)
	df := 1 / (float64(size) * dt)

	spec := make([]complex128, size)
	for k := 1; k <= size/2; k++ {
		f := float64(k) * df
		s := psdNorm * math.Pow(psd.Fyr, gamma-3) * math.Pow(f, -gamma)
		// Variance per quadrature for a real series with this one-sided PSD.
		amp := math.Sqrt(s * df / 2)
		re := amp * normal.Rand()
		im := amp * normal.Rand()
		if k == size/2 {
			// Nyquist bin must be real.
			spec[k] = complex(re*math.Sqrt2, 0)
			continue
		}
		spec[k] = complex(re, im)
		spec[size-k] = complex(re, -im)
	}

	out := make([]complex128, size)
	if err := plan.Inverse(out, spec); err != nil {
		return nil, fmt.Errorf("simulate: inverse FFT failed: %w", err)
	}

	// The inverse transform averages over bins; rescale so the time-domain
	// variance matches the integrated PSD.
	scale := float64(size)
	series := make([]float64, n)
	for i := range series {
		series[i] = real(out[i]) * scale
	}
	return series, nil
}

// InjectBackground draws one realization of a correlated common process and
// returns the residual contribution per pulsar. Coefficients on the shared
// Fourier grid (nf frequencies over tspan) follow a power-law spectrum, and
// the cross-pulsar correlation of each coefficient is given by orfFunc,
// applied through a Cholesky factor of the pair-correlation matrix.
func InjectBackground(psrs []pta.Pulsar, nf int, tspan, log10A, gamma float64, orfFunc orf.Func, rng *rand.Rand) ([][]float64, error) {
	if nf <= 0 {
		return nil, ErrNoFreqs
	}
	if tspan <= 0 {
		return nil, ErrInvalidSpacing
	}

	p := len(psrs)
	corr := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			corr.SetSym(i, j, orfFunc(psrs[i].Pos, psrs[j].Pos))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(corr) {
		return nil, ErrORFNotPosDef
	}
	var l mat.TriDense
	chol.LTo(&l)

	// Shared basis and spectrum.
	fmats := make([]*mat.Dense, p)
	var freqs []float64
	for i := range psrs {
		fmats[i], freqs = noise.FourierBasis(psrs[i].TOAs, nf, tspan)
	}
	phi := psd.Powerlaw(freqs, log10A, gamma, 2)

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	out := make([][]float64, p)
	for i := range out {
		out[i] = make([]float64, len(psrs[i].TOAs))
	}

	z := make([]float64, p)
	coeff := make([]float64, p)
	for k := range freqs {
		for i := range z {
			z[i] = normal.Rand()
		}
		amp := math.Sqrt(phi[k])
		for i := 0; i < p; i++ {
			var sum float64
			for j := 0; j <= i; j++ {
				sum += l.At(i, j) * z[j]
			}
			coeff[i] = amp * sum
		}
		for i := 0; i < p; i++ {
			col := fmats[i].ColView(k)
			for row := 0; row < col.Len(); row++ {
				out[i][row] += coeff[i] * col.AtVec(row)
			}
		}
	}
	return out, nil
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}
