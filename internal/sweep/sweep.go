package sweep

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/fit"
	"github.com/agbru/frankestudy/internal/franke"
)

// ErrShape is returned when a solver result violates the one-record-per-degree
// ordering of its configuration.
var ErrShape = errors.New("sweep: result shape does not match configuration")

// Degrees runs a single degree sweep and checks the shape of the result.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - solver: The collaborator that fits and scores each degree.
//   - sample: The data set to fit.
//   - cfg: The sweep configuration.
//
// Returns:
//   - *Result: Records for MinDegree..MaxDegree in order.
//   - error: A validation error, the wrapped solver error, or ErrShape.
func Degrees(ctx context.Context, solver Solver, sample *franke.Sample, cfg Configuration) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res, err := solver.Solve(ctx, sample, cfg)
	if err != nil {
		return nil, apperrors.WrapError(err, "solve %s", cfg)
	}
	if err := checkShape(res, cfg); err != nil {
		return nil, err
	}
	return res, nil
}

func checkShape(res *Result, cfg Configuration) error {
	if res == nil {
		return fmt.Errorf("%w: nil result for %s", ErrShape, cfg)
	}
	if len(res.Records) != cfg.Len() {
		return fmt.Errorf("%w: %d records for %s", ErrShape, len(res.Records), cfg)
	}
	for i, rec := range res.Records {
		if rec.Degree != cfg.MinDegree+i {
			return fmt.Errorf("%w: record %d has degree %d for %s", ErrShape, i, rec.Degree, cfg)
		}
	}
	return nil
}

// Compare runs one degree sweep per (λ, method) pair, λ in the outer loop,
// and keeps the test error and its decomposition.
func Compare(ctx context.Context, solver Solver, sample *franke.Sample, base Configuration, methods []fit.Method, lambdas []float64) (*Comparison, error) {
	cmp := &Comparison{
		Methods: methods,
		Lambdas: lambdas,
		Entries: make([][]Tradeoff, len(methods)),
	}
	for i := range cmp.Entries {
		cmp.Entries[i] = make([]Tradeoff, len(lambdas))
	}
	for j, lambda := range lambdas {
		for i, method := range methods {
			cfg := base
			cfg.Method = method
			cfg.Lambda = lambda
			res, err := Degrees(ctx, solver, sample, cfg)
			if err != nil {
				return nil, err
			}
			if cmp.Degrees == nil {
				cmp.Degrees = res.Degrees()
			}
			cmp.Entries[i][j] = Tradeoff{
				MSETest:  res.Column(MSETest),
				Bias:     res.Column(Bias),
				Variance: res.Column(Variance),
			}
		}
	}
	return cmp, nil
}
