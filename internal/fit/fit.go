package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

var (
	// ErrEmpty is returned when there are no observations to fit.
	ErrEmpty = errors.New("fit: no observations")
	// ErrNoConvergence is returned when the SVD factorization fails.
	ErrNoConvergence = errors.New("fit: SVD did not converge")
)

// rcond is the relative singular value cut-off of the pseudo-inverse.
const rcond = 1e-12

// LassoOptions controls the coordinate descent solver.
type LassoOptions struct {
	MaxIter int     // Maximum number of full coordinate sweeps
	Tol     float64 // Stop when the largest coefficient change falls below Tol
}

// DefaultLassoOptions returns the solver defaults.
func DefaultLassoOptions() LassoOptions {
	return LassoOptions{MaxIter: 1000, Tol: 1e-4}
}

// Model is a fitted polynomial surface.
type Model struct {
	Method Method
	Lambda float64
	// Coef holds the intercept followed by the slope coefficients, aligned
	// with the columns of the design matrix it was fitted on.
	Coef []float64
	// Iterations and Converged report the lasso solver state; OLS and ridge
	// always converge in one step.
	Iterations int
	Converged  bool
}

// Predict returns X·Coef.
func (m *Model) Predict(X mat.Matrix) []float64 {
	r, c := X.Dims()
	if c != len(m.Coef) {
		panic(ErrLengthMismatch)
	}
	out := mat.NewVecDense(r, nil)
	out.MulVec(X, mat.NewVecDense(c, m.Coef))
	return out.RawVector().Data
}

// Fit fits method to (X, y). Column 0 of X must be the constant term as
// produced by Design; it is handled through centering and never penalized.
func Fit(method Method, X *mat.Dense, y []float64, lambda float64, opts LassoOptions) (*Model, error) {
	n, p := X.Dims()
	if n != len(y) {
		return nil, ErrLengthMismatch
	}
	if n == 0 || p == 0 {
		return nil, ErrEmpty
	}
	if lambda < 0 || math.IsNaN(lambda) {
		return nil, apperrors.ValidationError{Field: "lambda", Message: fmt.Sprintf("must be non-negative, got %g", lambda)}
	}

	xc, means := centerFeatures(X)
	yMean := floats.Sum(y) / float64(n)
	yc := make([]float64, n)
	copy(yc, y)
	floats.AddConst(-yMean, yc)

	model := &Model{Method: method, Lambda: lambda, Converged: true}
	var slopes []float64
	if p > 1 {
		var err error
		switch method {
		case OLS:
			slopes, err = solveSVD(xc, yc, 0)
		case Ridge:
			slopes, err = solveSVD(xc, yc, lambda)
		case Lasso:
			slopes, model.Iterations, model.Converged = coordinateDescent(xc, yc, lambda, opts)
		default:
			err = fmt.Errorf("fit: unsupported method %v", method)
		}
		if err != nil {
			return nil, err
		}
	}

	model.Coef = make([]float64, p)
	model.Coef[0] = yMean - floats.Dot(means, slopes)
	copy(model.Coef[1:], slopes)
	return model, nil
}

// centerFeatures drops the constant column and centers the remaining ones.
// It returns the centered n×(p−1) matrix and the column means.
func centerFeatures(X *mat.Dense) (*mat.Dense, []float64) {
	n, p := X.Dims()
	if p == 1 {
		return nil, nil
	}
	xc := mat.DenseCopyOf(X.Slice(0, n, 1, p))
	means := make([]float64, p-1)
	col := make([]float64, n)
	for j := range means {
		mat.Col(col, j, xc)
		means[j] = floats.Sum(col) / float64(n)
		floats.AddConst(-means[j], col)
		xc.SetCol(j, col)
	}
	return xc, means
}

// solveSVD returns V·diag(s/(s²+λ))·Uᵀ·y. With λ = 0 this is the
// pseudo-inverse solution, with singular values below rcond·σmax discarded.
func solveSVD(X *mat.Dense, y []float64, lambda float64) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(X, mat.SVDThin) {
		return nil, ErrNoConvergence
	}
	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	uty := mat.NewVecDense(len(s), nil)
	uty.MulVec(u.T(), mat.NewVecDense(len(y), y))
	cut := 0.0
	if len(s) > 0 {
		cut = rcond * s[0]
	}
	for i, si := range s {
		switch {
		case lambda > 0:
			uty.SetVec(i, uty.AtVec(i)*si/(si*si+lambda))
		case si > cut:
			uty.SetVec(i, uty.AtVec(i)/si)
		default:
			uty.SetVec(i, 0)
		}
	}
	_, p := X.Dims()
	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&v, uty)
	return beta.RawVector().Data, nil
}

// coordinateDescent minimizes (1/2n)‖y − Xβ‖² + λ‖β‖₁ for centered X and y.
// Columns are scaled to unit mean square so each coordinate update is a
// plain soft-threshold; the result is returned on the original scale.
func coordinateDescent(X *mat.Dense, y []float64, lambda float64, opts LassoOptions) ([]float64, int, bool) {
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultLassoOptions().MaxIter
	}
	if opts.Tol <= 0 {
		opts.Tol = DefaultLassoOptions().Tol
	}
	n, p := X.Dims()
	nf := float64(n)

	cols := make([][]float64, p)
	scale := make([]float64, p)
	for j := 0; j < p; j++ {
		cols[j] = mat.Col(nil, j, X)
		scale[j] = math.Sqrt(floats.Dot(cols[j], cols[j]) / nf)
		if scale[j] > 0 {
			floats.Scale(1/scale[j], cols[j])
		}
	}

	beta := make([]float64, p)
	residual := make([]float64, n)
	copy(residual, y)

	iter, converged := 0, false
	for iter < opts.MaxIter {
		iter++
		maxDelta := 0.0
		for j := 0; j < p; j++ {
			if scale[j] == 0 {
				continue
			}
			old := beta[j]
			rho := floats.Dot(cols[j], residual)/nf + old
			updated := softThreshold(rho, lambda)
			if delta := updated - old; delta != 0 {
				floats.AddScaled(residual, -delta, cols[j])
				beta[j] = updated
				maxDelta = math.Max(maxDelta, math.Abs(delta))
			}
		}
		if maxDelta < opts.Tol {
			converged = true
			break
		}
	}

	for j := range beta {
		if scale[j] > 0 {
			beta[j] /= scale[j]
		}
	}
	return beta, iter, converged
}

// softThreshold applies the soft-thresholding operator.
func softThreshold(z, lambda float64) float64 {
	if z > lambda {
		return z - lambda
	} else if z < -lambda {
		return z + lambda
	}
	return 0
}
