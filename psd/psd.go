package psd

import "math"

// Fyr is the reference frequency of 1/yr in Hz (Julian year).
const Fyr = 1.0 / (365.25 * 86400)

// Powerlaw evaluates the power-law power spectral density on a Fourier
// frequency grid, integrated over each frequency bin:
//
//	S(f) Δf = A² / (12 π²) · Fyr^(γ-3) · f^(-γ) · Δf
//
// with A = 10^log10A. The grid repeats each frequency `components` times
// (2 for sine/cosine column pairs); the bin width Δf is the spacing of the
// distinct frequencies, with the first bin measured from zero. The result
// has the same length and layout as freqs.
func Powerlaw(freqs []float64, log10A, gamma float64, components int) []float64 {
	if components <= 0 {
		components = 2
	}
	a := math.Pow(10, log10A)
	norm := a * a / (12 * math.Pi * math.Pi) * math.Pow(Fyr, gamma-3)

	out := make([]float64, len(freqs))
	prev := 0.0
	for base := 0; base < len(freqs); base += components {
		f := freqs[base]
		df := f - prev
		prev = f
		v := norm * math.Pow(f, -gamma) * df
		for c := 0; c < components && base+c < len(out); c++ {
			out[base+c] = v
		}
	}
	return out
}
