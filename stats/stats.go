package stats

import (
	"math"
	"sort"
)

// Summary holds one-pass moment statistics of a sample of draws, such as
// the OS or SNR values of a noise-marginalized run.
type Summary struct {
	Count    int
	Mean     float64
	Variance float64 // population variance
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
	RMS      float64
	Min      float64
	MinIndex int
	Max      float64
	MaxIndex int
}

// Summarize computes all summary statistics in a single pass using
// Welford's online algorithm for numerical stability on the higher-order
// moments.
func Summarize(draws []float64) Summary {
	n := len(draws)
	if n == 0 {
		return Summary{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq  float64
		maxVal = draws[0]
		maxIdx int
		minVal = draws[0]
		minIdx int
	)

	for i, x := range draws {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxIdx = i
		}
		if x < minVal {
			minVal = x
			minIdx = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Summary{
		Count:    n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
		RMS:      math.Sqrt(sumSq / nf),
		Min:      minVal,
		MinIndex: minIdx,
		Max:      maxVal,
		MaxIndex: maxIdx,
	}
}

// Quantile returns the q-quantile (0 <= q <= 1) of the draws using linear
// interpolation between order statistics. The input is not modified.
// Returns NaN for an empty sample.
func Quantile(draws []float64, q float64) float64 {
	n := len(draws)
	if n == 0 {
		return math.NaN()
	}
	if q < 0 {
		q = 0
	} else if q > 1 {
		q = 1
	}

	sorted := append([]float64(nil), draws...)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
