package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NumFeatures is the number of monomials x^i·y^j with i+j <= degree.
func NumFeatures(degree int) int {
	if degree < 0 {
		return 0
	}
	return (degree + 1) * (degree + 2) / 2
}

// Design builds the polynomial design matrix for points (x[i], y[i]).
// Columns are ordered by total degree n = 0..degree and, within a degree,
// by increasing power of y: 1, x, y, x², xy, y², ...
// It panics with ErrLengthMismatch if x and y differ in length.
func Design(x, y []float64, degree int) *mat.Dense {
	if len(x) != len(y) {
		panic(ErrLengthMismatch)
	}
	p := NumFeatures(degree)
	X := mat.NewDense(len(x), p, nil)
	for i := range x {
		row := X.RawRowView(i)
		col := 0
		for n := 0; n <= degree; n++ {
			for k := 0; k <= n; k++ {
				row[col] = math.Pow(x[i], float64(n-k)) * math.Pow(y[i], float64(k))
				col++
			}
		}
	}
	return X
}

// Rows returns a new matrix holding the selected rows of X in order.
func Rows(X mat.Matrix, idx []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for i, r := range idx {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(r, j))
		}
	}
	return out
}

// Pick returns v[idx[0]], v[idx[1]], ...
func Pick(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = v[r]
	}
	return out
}
