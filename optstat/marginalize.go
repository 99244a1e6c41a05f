package optstat

import (
	"github.com/cwbudde/algo-pta/chain"
	"github.com/cwbudde/algo-pta/pta"
)

// Marginalized evaluates the statistic over n posterior samples drawn
// uniformly from the chain with replacement, marginalizing the result over
// the noise-model uncertainty. It returns the OS and SNR value of every
// draw, in draw order, both slices of length exactly n.
//
// paramNames maps chain columns to parameter names; when nil, the model's
// own flat-vector mapping is used. A chain whose parameter-column count
// disagrees with the model produces a warning, not an error; the evaluation
// may still fail downstream if the shapes are truly incompatible.
func (o *OptimalStatistic) Marginalized(c *chain.Chain, paramNames []string, n int) (osValues, snrValues []float64, err error) {
	o.checkChainShape(c)

	osValues = make([]float64, n)
	snrValues = make([]float64, n)
	for i := 0; i < n; i++ {
		idx := o.cfg.Rand.IntN(c.Rows())
		res, err := o.Compute(o.chainParams(c, idx, paramNames))
		if err != nil {
			return nil, nil, err
		}
		osValues[i] = res.OS
		snrValues[i] = res.SNR()
	}
	return osValues, snrValues, nil
}

// Maximized evaluates the statistic at the single sample with the maximum
// log-likelihood, returning the full pairwise result. The SNR is available
// via [Result.SNR].
func (o *OptimalStatistic) Maximized(c *chain.Chain, paramNames []string) (*Result, error) {
	o.checkChainShape(c)

	idx := c.MaxLikelihoodRow()
	return o.Compute(o.chainParams(c, idx, paramNames))
}

// chainParams maps the parameter columns of row idx to a named assignment.
func (o *OptimalStatistic) chainParams(c *chain.Chain, idx int, paramNames []string) pta.ParamSet {
	row := c.ParamRow(idx)
	if paramNames == nil {
		return o.model.MapParams(row)
	}
	params := make(pta.ParamSet, len(paramNames))
	for i, name := range paramNames {
		if i >= len(row) {
			break
		}
		params[name] = row[i]
	}
	return params
}

func (o *OptimalStatistic) checkChainShape(c *chain.Chain) {
	if c.ParamColumns() != len(o.model.ParamNames()) {
		o.cfg.Logger.Warn("optstat: chain parameter count does not match the model",
			"chain", c.ParamColumns(), "model", len(o.model.ParamNames()))
	}
}
