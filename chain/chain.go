package chain

import (
	"errors"
	"fmt"
)

// AuxColumns is the number of trailing auxiliary columns in a sample chain:
// log-likelihood, log-prior, acceptance rate and a sampler-reserved column.
const AuxColumns = 4

// Errors returned by chain construction.
var (
	ErrEmpty         = errors.New("chain: no samples")
	ErrTooFewColumns = errors.New("chain: fewer columns than the auxiliary block")
	ErrRaggedRows    = errors.New("chain: rows have differing lengths")
)

// Chain is a posterior sample chain. Each row is one sample: the named model
// parameters in their declared order, followed by the auxiliary block.
type Chain struct {
	rows, cols int
	data       []float64
}

// New builds a chain from row slices. All rows must have the same length,
// which must exceed the auxiliary block.
func New(rows [][]float64) (*Chain, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	cols := len(rows[0])
	if cols <= AuxColumns {
		return nil, fmt.Errorf("%w: %d columns", ErrTooFewColumns, cols)
	}

	c := &Chain{
		rows: len(rows),
		cols: cols,
		data: make([]float64, 0, len(rows)*cols),
	}
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, i, len(r), cols)
		}
		c.data = append(c.data, r...)
	}
	return c, nil
}

// Rows returns the number of samples.
func (c *Chain) Rows() int { return c.rows }

// Columns returns the total column count including the auxiliary block.
func (c *Chain) Columns() int { return c.cols }

// ParamColumns returns the number of parameter columns.
func (c *Chain) ParamColumns() int { return c.cols - AuxColumns }

// ParamRow returns a copy of the parameter columns of row i.
func (c *Chain) ParamRow(i int) []float64 {
	row := c.data[i*c.cols : i*c.cols+c.ParamColumns()]
	return append([]float64(nil), row...)
}

// LogLikelihood returns the log-likelihood entry of row i (the first
// auxiliary column).
func (c *Chain) LogLikelihood(i int) float64 {
	return c.data[i*c.cols+c.cols-AuxColumns]
}

// MaxLikelihoodRow returns the index of the sample with the largest
// log-likelihood. Ties resolve to the earliest row.
func (c *Chain) MaxLikelihoodRow() int {
	best := 0
	bestVal := c.LogLikelihood(0)
	for i := 1; i < c.rows; i++ {
		if v := c.LogLikelihood(i); v > bestVal {
			best = i
			bestVal = v
		}
	}
	return best
}
