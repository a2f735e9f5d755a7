// Package ahp implements the Analytic Hierarchy Process weight derivation used
// to justify the scoring constants of the region scorer.
//
// Weights are computed with the geometric-mean method:
//
//	g_i = (Π_j M[i][j])^(1/n)
//	w_i = g_i / Σ g
//
// and certified with Saaty's consistency ratio:
//
//	λmax = mean_i((M·w)_i / w_i)
//	CI   = (λmax − n) / (n − 1)
//	CR   = CI / RI[n]
//
// A matrix is acceptably consistent when CR < 0.10.  The calculator is an
// offline tool; an inconsistent matrix is reported, never rejected.
package ahp

import (
	"fmt"
	"math"

	"github.com/turtacn/recreation-potential/pkg/errors"
)

// ConsistencyThreshold is the CR below which a matrix is accepted.
const ConsistencyThreshold = 0.10

// MaxMatrixSize is the largest n covered by the random index table.
const MaxMatrixSize = 10

// randomIndex holds Saaty's random consistency index for n = 1..10.
var randomIndex = [MaxMatrixSize + 1]float64{
	0,    // unused
	0.00, // 1
	0.00, // 2
	0.58, // 3
	0.90, // 4
	1.12, // 5
	1.24, // 6
	1.32, // 7
	1.41, // 8
	1.45, // 9
	1.49, // 10
}

// RandomIndex returns RI for a matrix of size n and false when n is outside 1..10.
func RandomIndex(n int) (float64, bool) {
	if n < 1 || n > MaxMatrixSize {
		return 0, false
	}
	return randomIndex[n], true
}

// Matrix is a square pairwise-comparison matrix.  M[i][j] states how much more
// important criterion i is than criterion j.
type Matrix [][]float64

// Size returns n.
func (m Matrix) Size() int { return len(m) }

// Validate checks the matrix is square, non-empty, within the RI table and has
// strictly positive finite entries.
func (m Matrix) Validate() error {
	n := len(m)
	if n == 0 {
		return errors.New(errors.ErrCodeAHPMatrixInvalid, "matrix is empty")
	}
	if n > MaxMatrixSize {
		return errors.Newf(errors.ErrCodeAHPMatrixInvalid, "matrix size %d exceeds %d", n, MaxMatrixSize)
	}
	for i, row := range m {
		if len(row) != n {
			return errors.Newf(errors.ErrCodeAHPMatrixInvalid, "row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if !(v > 0) || math.IsInf(v, 0) {
				return errors.Newf(errors.ErrCodeAHPMatrixInvalid, "entry [%d][%d] must be positive, got %v", i, j, v)
			}
		}
	}
	return nil
}

// Weight is the derived importance of one criterion.
type Weight struct {
	Criterion string  `json:"criterion"`
	Value     float64 `json:"weight"`
}

// Weights is an ordered weight vector, one entry per criterion in matrix order.
type Weights []Weight

// Values returns the bare weight vector.
func (w Weights) Values() []float64 {
	out := make([]float64, len(w))
	for i, x := range w {
		out[i] = x.Value
	}
	return out
}

// Sum returns Σ w.
func (w Weights) Sum() float64 {
	s := 0.0
	for _, x := range w {
		s += x.Value
	}
	return s
}

// Get returns the weight of criterion.
func (w Weights) Get(criterion string) (float64, bool) {
	for _, x := range w {
		if x.Criterion == criterion {
			return x.Value, true
		}
	}
	return 0, false
}

// Map returns the weights keyed by criterion name.
func (w Weights) Map() map[string]float64 {
	out := make(map[string]float64, len(w))
	for _, x := range w {
		out[x.Criterion] = x.Value
	}
	return out
}

// Consistency is the outcome of the consistency check.
type Consistency struct {
	LambdaMax    float64 `json:"lambda_max"`
	CI           float64 `json:"consistency_index"`
	CR           float64 `json:"consistency_ratio"`
	RI           float64 `json:"random_index"`
	IsConsistent bool    `json:"is_consistent"`
}

// Calculator derives weights from a fixed comparison matrix.
type Calculator struct {
	criteria []string
	matrix   Matrix
}

// NewCalculator validates the matrix and pairs it with criterion names.
func NewCalculator(criteria []string, matrix Matrix) (*Calculator, error) {
	if err := matrix.Validate(); err != nil {
		return nil, err
	}
	if len(criteria) != matrix.Size() {
		return nil, errors.Newf(errors.ErrCodeAHPMatrixInvalid,
			"%d criteria for a %dx%d matrix", len(criteria), matrix.Size(), matrix.Size())
	}
	c := make([]string, len(criteria))
	copy(c, criteria)
	return &Calculator{criteria: c, matrix: matrix}, nil
}

// NewDefaultCalculator returns the calculator for the seven scoring factors.
func NewDefaultCalculator() *Calculator {
	c, err := NewCalculator(DefaultCriteria, DefaultMatrix())
	if err != nil {
		panic(fmt.Sprintf("ahp: default matrix invalid: %v", err))
	}
	return c
}

// Criteria returns the criterion names in matrix order.
func (c *Calculator) Criteria() []string {
	out := make([]string, len(c.criteria))
	copy(out, c.criteria)
	return out
}

// Matrix returns the comparison matrix.
func (c *Calculator) Matrix() Matrix { return c.matrix }

// Weights computes the normalized geometric-mean weight of every criterion.
// The values are not rounded; they sum to 1 within floating-point tolerance.
func (c *Calculator) Weights() Weights {
	n := c.matrix.Size()
	means := make([]float64, n)
	total := 0.0
	for i, row := range c.matrix {
		// sum of logs keeps large Saaty products from overflowing
		logSum := 0.0
		for _, v := range row {
			logSum += math.Log(v)
		}
		means[i] = math.Exp(logSum / float64(n))
		total += means[i]
	}

	out := make(Weights, n)
	for i := range means {
		out[i] = Weight{Criterion: c.criteria[i], Value: means[i] / total}
	}
	return out
}

// Consistency evaluates λmax, CI and CR for the given weight vector.  A
// weight vector of the wrong length or with zero entries yields a zero-valued
// result flagged inconsistent.
func (c *Calculator) Consistency(w Weights) Consistency {
	n := c.matrix.Size()
	values := w.Values()
	if len(values) != n {
		return Consistency{}
	}

	lambda := 0.0
	for i, row := range c.matrix {
		if values[i] == 0 {
			return Consistency{}
		}
		dot := 0.0
		for j, v := range row {
			dot += v * values[j]
		}
		lambda += dot / values[i]
	}
	lambda /= float64(n)

	ci := 0.0
	if n > 1 {
		ci = (lambda - float64(n)) / float64(n-1)
	}
	ri, _ := RandomIndex(n)
	cr := 0.0
	if ri > 0 {
		cr = ci / ri
	}

	return Consistency{
		LambdaMax:    lambda,
		CI:           ci,
		CR:           cr,
		RI:           ri,
		IsConsistent: cr < ConsistencyThreshold,
	}
}

//Personal.AI order the ending
