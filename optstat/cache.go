package optstat

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-pta/pta"
)

// productCache memoizes the noise-weighted matrix products FNr, FNF and FNT
// per distinct value of the parameter subset each depends on. Keys are built
// from exact float64 bits, so a hit requires bit-identical parameter values.
//
// Entries are never evicted; one engine instance is expected to serve a
// single bounded analysis.
type productCache struct {
	fnr map[string][][]float64
	fnf map[string][]*mat.Dense
	fnt map[string][]*mat.Dense
}

func newProductCache() *productCache {
	return &productCache{
		fnr: make(map[string][][]float64),
		fnf: make(map[string][]*mat.Dense),
		fnt: make(map[string][]*mat.Dense),
	}
}

// cacheKey canonicalizes the values of the named parameters present in the
// assignment. Names must be pre-sorted; parameters absent from the
// assignment are skipped so that defaulted values key consistently.
func cacheKey(params pta.ParamSet, sortedNames []string) string {
	var b strings.Builder
	for _, name := range sortedNames {
		v, ok := params[name]
		if !ok {
			continue
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatUint(math.Float64bits(v), 16))
		b.WriteByte(';')
	}
	return b.String()
}

// sortedCopy returns a sorted copy of names for stable cache keys.
func sortedCopy(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
