package optstat

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-pta/pta"
)

// Signal tags identifying the common gravitational-wave process among a
// pulsar's basis columns.
const (
	commonSignalName = "red noise"
)

var commonSignalIDs = map[string]bool{
	"gw":     true,
	"gw_crn": true,
}

// selectCommonBasis slices, for each pulsar, the columns of the full basis
// matrix tagged as the common process, and extracts the shared frequency
// grid. Column indices are deduplicated and sorted. The grid is taken from
// the first pulsar's first matching signal only; see the package notes on
// this preserved behavior.
func selectCommonBasis(m pta.Model) ([]*mat.Dense, []float64, error) {
	psrs := m.Pulsars()
	fmats := make([]*mat.Dense, len(psrs))

	var freqs []float64
	for i := range psrs {
		var cols []int
		for _, sig := range m.Signals(i) {
			if sig.Name != commonSignalName || !commonSignalIDs[sig.ID] {
				continue
			}
			cols = append(cols, sig.Columns...)
			if freqs == nil {
				freqs = sig.Freqs
			}
		}
		if len(cols) == 0 {
			return nil, nil, fmt.Errorf("%w: pulsar %s", ErrMissingBasis, psrs[i].Name)
		}
		fmats[i] = sliceColumns(m.Basis(i, nil), dedupe(cols))
	}
	return fmats, freqs, nil
}

// dedupe sorts column indices and removes duplicates.
func dedupe(cols []int) []int {
	sort.Ints(cols)
	out := cols[:1]
	for _, c := range cols[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

// sliceColumns copies the selected columns of a into a new matrix.
func sliceColumns(a *mat.Dense, cols []int) *mat.Dense {
	r, _ := a.Dims()
	out := mat.NewDense(r, len(cols), nil)
	buf := make([]float64, r)
	for j, c := range cols {
		mat.Col(buf, c, a)
		out.SetCol(j, buf)
	}
	return out
}
