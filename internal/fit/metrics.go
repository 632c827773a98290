package fit

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch signals that paired slices or matrices disagree in length.
var ErrLengthMismatch = errors.New("fit: length mismatch")

// MSE is the mean squared error between observations y and predictions yhat.
func MSE(y, yhat []float64) float64 {
	if len(y) != len(yhat) {
		panic(ErrLengthMismatch)
	}
	if len(y) == 0 {
		return 0
	}
	d := floats.Distance(y, yhat, 2)
	return d * d / float64(len(y))
}

// R2 is the coefficient of determination of yhat with respect to y.
// A constant y yields 1 for a perfect prediction and 0 otherwise.
func R2(y, yhat []float64) float64 {
	if len(y) != len(yhat) {
		panic(ErrLengthMismatch)
	}
	if len(y) < 2 || stat.Variance(y, nil) == 0 {
		if floats.Equal(y, yhat) {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(yhat, y, nil)
}
