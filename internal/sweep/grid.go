package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/agbru/frankestudy/internal/franke"
)

// ErrIncompleteGrid is returned when a grid cell is written zero times or more
// than once.
var ErrIncompleteGrid = errors.New("sweep: grid not filled exactly once")

// Axis derives the configuration of one grid column from the base
// configuration and the column's parameter value.
type Axis struct {
	Name  string
	Apply func(base Configuration, value float64) Configuration
}

// LambdaAxis varies the regularization strength.
var LambdaAxis = Axis{
	Name: "lambda",
	Apply: func(base Configuration, value float64) Configuration {
		base.Lambda = value
		return base
	},
}

// GridOptions tunes grid execution.
type GridOptions struct {
	// Jobs bounds the number of columns solved concurrently. Values below 1
	// run the columns one after another.
	Jobs int
}

// fillTracker counts writes per cell so a grid can prove it was filled
// exactly once.
type fillTracker struct {
	mu     sync.Mutex
	counts []int
	cols   int
}

func newFillTracker(rows, cols int) *fillTracker {
	return &fillTracker{counts: make([]int, rows*cols), cols: cols}
}

func (t *fillTracker) mark(i, j int) {
	t.mu.Lock()
	t.counts[i*t.cols+j]++
	t.mu.Unlock()
}

func (t *fillTracker) check() error {
	for k, n := range t.counts {
		if n != 1 {
			return fmt.Errorf("%w: cell (%d,%d) written %d times", ErrIncompleteGrid, k/t.cols, k%t.cols, n)
		}
	}
	return nil
}

// Grid runs one degree sweep per axis value and collects metric into a
// degree × value matrix. Column j holds the sweep for values[j].
//
// Parameters:
//   - ctx: The context for cancellation; the first failing column cancels the rest.
//   - solver: The collaborator that fits and scores each degree.
//   - sample: The data set to fit.
//   - base: The configuration shared by every column.
//   - axis: How a column's configuration is derived from base.
//   - values: The parameter value of each column.
//   - metric: The record field copied into the matrix.
//   - opts: Execution options.
//
// Returns:
//   - *GridResult: The filled table.
//   - error: The first column error, or ErrIncompleteGrid.
func Grid(ctx context.Context, solver Solver, sample *franke.Sample, base Configuration, axis Axis, values []float64, metric Metric, opts GridOptions) (*GridResult, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no %s values", ErrIncompleteGrid, axis.Name)
	}
	rows := base.Len()
	out := &GridResult{
		Metric:  metric,
		Degrees: make([]int, rows),
		Params:  append([]float64(nil), values...),
		Values:  mat.NewDense(rows, len(values), nil),
	}
	for i := range out.Degrees {
		out.Degrees[i] = base.MinDegree + i
	}
	tracker := newFillTracker(rows, len(values))

	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)
	for j, v := range values {
		col, value := j, v
		g.Go(func() error {
			cfg := axis.Apply(base, value)
			res, err := Degrees(ctx, solver, sample, cfg)
			if err != nil {
				return err
			}
			if cfg.MinDegree != base.MinDegree || cfg.Len() != rows {
				return fmt.Errorf("%w: %s=%g changed the degree range", ErrShape, axis.Name, value)
			}
			for i, rec := range res.Records {
				// Each goroutine owns one column of Values.
				out.Values.Set(i, col, metric.of(rec))
				tracker.mark(i, col)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := tracker.check(); err != nil {
		return nil, err
	}
	return out, nil
}
