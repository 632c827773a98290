package solver

import (
	"gonum.org/v1/gonum/stat"
)

// tradeoff is the bias-variance decomposition of a set of test predictions.
type tradeoff struct {
	err, bias, variance float64
	// mean is the per-point mean prediction across models.
	mean []float64
}

// decompose splits the expected squared test error of the prediction matrix
// preds (one slice per model, each aligned with z) into bias² and variance.
// With a single model the variance is zero and err equals bias.
func decompose(z []float64, preds [][]float64) tradeoff {
	n, m := len(z), len(preds)
	out := tradeoff{mean: make([]float64, n)}
	if n == 0 || m == 0 {
		return out
	}
	point := make([]float64, m)
	for i := 0; i < n; i++ {
		for j, p := range preds {
			point[j] = p[i]
			d := z[i] - p[i]
			out.err += d * d
		}
		mean, variance := stat.PopMeanVariance(point, nil)
		out.mean[i] = mean
		d := z[i] - mean
		out.bias += d * d
		out.variance += variance
	}
	out.err /= float64(n * m)
	out.bias /= float64(n)
	out.variance /= float64(n)
	return out
}
