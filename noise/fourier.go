package noise

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FourierBasis builds the sine/cosine design matrix of a rank-2·nf Fourier
// red-noise basis over the given observation epochs:
//
//	F[:,2k]   = sin(2π f_k t),  F[:,2k+1] = cos(2π f_k t),  f_k = (k+1)/Tspan
//
// It returns the n×2nf matrix together with the frequency labels, one per
// column (each frequency appears twice, once for each quadrature).
func FourierBasis(toas []float64, nf int, tspan float64) (*mat.Dense, []float64) {
	n := len(toas)
	f := mat.NewDense(n, 2*nf, nil)
	freqs := make([]float64, 2*nf)

	for k := 0; k < nf; k++ {
		fk := float64(k+1) / tspan
		freqs[2*k] = fk
		freqs[2*k+1] = fk
		for j, t := range toas {
			s, c := math.Sincos(2 * math.Pi * fk * t)
			f.Set(j, 2*k, s)
			f.Set(j, 2*k+1, c)
		}
	}
	return f, freqs
}
