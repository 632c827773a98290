package sweep

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/fit"
)

// Resampling selects how test error is estimated for each degree.
type Resampling int

const (
	// None fits once on the training split.
	None Resampling = iota
	// Bootstrap refits on resamples of the training split drawn with replacement.
	Bootstrap
	// KFold refits on k-1 folds of the training split and scores the held-out fold.
	KFold
)

var resamplingNames = [...]string{None: "none", Bootstrap: "bootstrap", KFold: "kfold"}

func (r Resampling) String() string {
	if r < 0 || int(r) >= len(resamplingNames) {
		return fmt.Sprintf("resampling(%d)", int(r))
	}
	return resamplingNames[r]
}

// ParseResampling parses a case-insensitive resampling name.
func ParseResampling(s string) (Resampling, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range resamplingNames {
		if n == name {
			return Resampling(i), nil
		}
	}
	return 0, apperrors.ValidationError{Field: "resampling", Message: fmt.Sprintf("unknown resampling %q (want none, bootstrap or kfold)", s)}
}

// Configuration describes one degree sweep.
type Configuration struct {
	Method     fit.Method
	Lambda     float64
	Resampling Resampling
	MinDegree  int
	MaxDegree  int
}

// Validate reports the first invalid field.
func (c Configuration) Validate() error {
	switch {
	case c.MinDegree < 0:
		return apperrors.ValidationError{Field: "min_degree", Message: fmt.Sprintf("must be non-negative, got %d", c.MinDegree)}
	case c.MaxDegree < c.MinDegree:
		return apperrors.ValidationError{Field: "max_degree", Message: fmt.Sprintf("must be at least min_degree %d, got %d", c.MinDegree, c.MaxDegree)}
	case c.Lambda < 0 || math.IsNaN(c.Lambda):
		return apperrors.ValidationError{Field: "lambda", Message: fmt.Sprintf("must be non-negative, got %g", c.Lambda)}
	case c.Method < fit.OLS || c.Method > fit.Lasso:
		return apperrors.ValidationError{Field: "method", Message: fmt.Sprintf("unknown method %v", c.Method)}
	case c.Resampling < None || c.Resampling > KFold:
		return apperrors.ValidationError{Field: "resampling", Message: fmt.Sprintf("unknown resampling %v", c.Resampling)}
	}
	return nil
}

// Len is the number of degrees covered by the sweep.
func (c Configuration) Len() int { return c.MaxDegree - c.MinDegree + 1 }

func (c Configuration) String() string {
	return fmt.Sprintf("%s/%s λ=%g degrees %d..%d", c.Method, c.Resampling, c.Lambda, c.MinDegree, c.MaxDegree)
}

// Record holds the scores of one polynomial degree.
type Record struct {
	Degree   int
	MSETrain float64
	MSETest  float64
	Bias     float64
	Variance float64
	R2Train  float64
	R2Test   float64
	// Beta are the coefficients of a fit on the full training split.
	Beta []float64
	// Prediction is the mean test-set prediction across resampled models.
	Prediction []float64
}

// Metric names one scalar column of a Result.
type Metric int

const (
	MSETest Metric = iota
	MSETrain
	Bias
	Variance
	R2Train
	R2Test
)

var metricNames = [...]string{
	MSETest:  "mse_test",
	MSETrain: "mse_train",
	Bias:     "bias",
	Variance: "variance",
	R2Train:  "r2_train",
	R2Test:   "r2_test",
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric parses a metric name such as "mse_test".
func ParseMetric(s string) (Metric, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range metricNames {
		if n == name {
			return Metric(i), nil
		}
	}
	return 0, apperrors.ValidationError{Field: "metric", Message: fmt.Sprintf("unknown metric %q", s)}
}

func (m Metric) of(r Record) float64 {
	switch m {
	case MSETrain:
		return r.MSETrain
	case Bias:
		return r.Bias
	case Variance:
		return r.Variance
	case R2Train:
		return r.R2Train
	case R2Test:
		return r.R2Test
	}
	return r.MSETest
}

// Result is the outcome of one degree sweep, ordered by ascending degree.
type Result struct {
	Config  Configuration
	Records []Record
}

// Degrees returns the degree of every record.
func (r *Result) Degrees() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = float64(rec.Degree)
	}
	return out
}

// Column returns metric for every record.
func (r *Result) Column(metric Metric) []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = metric.of(rec)
	}
	return out
}

// BetaMatrix returns an n×len(Records) matrix whose row i holds β_i for each
// degree. Degrees with fewer than i+1 coefficients contribute zero.
func (r *Result) BetaMatrix(n int) *mat.Dense {
	if n <= 0 || len(r.Records) == 0 {
		return nil
	}
	m := mat.NewDense(n, len(r.Records), nil)
	for j, rec := range r.Records {
		for i := 0; i < n && i < len(rec.Beta); i++ {
			m.Set(i, j, rec.Beta[i])
		}
	}
	return m
}

// GridResult is a degree × parameter table of one metric.
type GridResult struct {
	Metric  Metric
	Degrees []int
	Params  []float64
	// Values has one row per degree and one column per parameter.
	Values *mat.Dense
}

// Tradeoff holds the decomposition curves of one sweep.
type Tradeoff struct {
	MSETest  []float64
	Bias     []float64
	Variance []float64
}

// Comparison holds the tradeoff curves of several methods at several λ.
type Comparison struct {
	Degrees []float64
	Methods []fit.Method
	Lambdas []float64
	// Entries is indexed [method][lambda] in the order of Methods and Lambdas.
	Entries [][]Tradeoff
}
