package sweep

//go:generate mockgen -source=solver.go -destination=mocks/mock_solver.go -package=mocks

import (
	"context"

	"github.com/agbru/frankestudy/internal/franke"
)

// Solver fits every degree of a configuration against a sample and scores it.
// Implementations must return one record per degree in ascending order and
// must be safe for concurrent use when Grid runs with more than one job.
type Solver interface {
	Solve(ctx context.Context, sample *franke.Sample, cfg Configuration) (*Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, sample *franke.Sample, cfg Configuration) (*Result, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, sample *franke.Sample, cfg Configuration) (*Result, error) {
	return f(ctx, sample, cfg)
}
