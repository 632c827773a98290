package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/fit"
	"github.com/agbru/frankestudy/internal/franke"
	"github.com/agbru/frankestudy/internal/sweep"
)

// Default resampling parameters.
const (
	DefaultTestFraction = 0.2
	DefaultBootstraps   = 100
	DefaultFolds        = 5
	DefaultSeed         = 133
)

// Observer is notified after every individual model fit.
type Observer interface {
	ObserveFit(method, resampling string, d time.Duration)
}

// Options configures a Solver.
type Options struct {
	// TestFraction is the share of points held out for testing.
	TestFraction float64
	// Bootstraps is the number of resamples for sweep.Bootstrap.
	Bootstraps int
	// Folds is k for sweep.KFold.
	Folds int
	// Seed drives the train/test split, the fold assignment and the
	// bootstrap draws.
	Seed  uint64
	Lasso fit.LassoOptions
	// Observer may be nil.
	Observer Observer
}

// DefaultOptions returns the standard study settings.
func DefaultOptions() Options {
	return Options{
		TestFraction: DefaultTestFraction,
		Bootstraps:   DefaultBootstraps,
		Folds:        DefaultFolds,
		Seed:         DefaultSeed,
		Lasso:        fit.DefaultLassoOptions(),
	}
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	switch {
	case !(o.TestFraction > 0 && o.TestFraction < 1):
		return apperrors.ValidationError{Field: "test_size", Message: fmt.Sprintf("must be in (0,1), got %g", o.TestFraction)}
	case o.Bootstraps < 1:
		return apperrors.ValidationError{Field: "bootstraps", Message: fmt.Sprintf("must be positive, got %d", o.Bootstraps)}
	case o.Folds < 2:
		return apperrors.ValidationError{Field: "folds", Message: fmt.Sprintf("must be at least 2, got %d", o.Folds)}
	}
	return nil
}

// Solver fits and scores polynomial models on a Franke sample.
// A Solver is safe for concurrent use; every call derives its random streams
// from Seed and the degree being fitted, never from shared state.
type Solver struct {
	opts   Options
	logger zerolog.Logger
}

var _ sweep.Solver = (*Solver)(nil)

// New creates a Solver after validating opts.
func New(opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Solver{opts: opts, logger: zerolog.Nop()}, nil
}

// SetLogger configures the logger for per-degree fit events.
func (s *Solver) SetLogger(l zerolog.Logger) {
	s.logger = l
}

// Solve implements sweep.Solver.
func (s *Solver) Solve(ctx context.Context, sample *franke.Sample, cfg sweep.Configuration) (*sweep.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, apperrors.ValidationError{Field: "sample", Message: "is nil"}
	}
	x, y, z := sample.Points()
	if len(z) < 2 {
		return nil, apperrors.ValidationError{Field: "sample", Message: fmt.Sprintf("needs at least 2 points, got %d", len(z))}
	}
	train, test := trainTestSplit(len(z), s.opts.TestFraction, s.opts.Seed)
	if cfg.Resampling == sweep.KFold && len(train) < s.opts.Folds {
		return nil, apperrors.ValidationError{Field: "folds", Message: fmt.Sprintf("%d folds exceed %d training points", s.opts.Folds, len(train))}
	}

	res := &sweep.Result{Config: cfg, Records: make([]sweep.Record, 0, cfg.Len())}
	for degree := cfg.MinDegree; degree <= cfg.MaxDegree; degree++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		design := fit.Design(x, y, degree)
		p := &problem{
			xTrain: fit.Rows(design, train),
			zTrain: fit.Pick(z, train),
			xTest:  fit.Rows(design, test),
			zTest:  fit.Pick(z, test),
		}
		rec, err := s.solveDegree(ctx, p, cfg, degree)
		if err != nil {
			if apperrors.IsContextError(err) {
				return nil, err
			}
			return nil, apperrors.FitError{Method: cfg.Method.String(), Degree: degree, Cause: err}
		}
		s.logger.Debug().
			Str("method", cfg.Method.String()).
			Str("resampling", cfg.Resampling.String()).
			Float64("lambda", cfg.Lambda).
			Int("degree", degree).
			Float64("mse_test", rec.MSETest).
			Dur("duration", time.Since(start)).
			Msg("degree solved")
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

var errNonFinite = errors.New("non-finite test error")

// problem is one degree's train/test design.
type problem struct {
	xTrain *mat.Dense
	zTrain []float64
	xTest  *mat.Dense
	zTest  []float64
}

// scores accumulates per-model train/test statistics.
type scores struct {
	mseTrain, r2Train, r2Test float64
	heldOut                   float64
	preds                     [][]float64
}

func (sc *scores) add(m *fit.Model, xTrain *mat.Dense, zTrain []float64, xTest *mat.Dense, zTest []float64) {
	trainPred := m.Predict(xTrain)
	testPred := m.Predict(xTest)
	sc.mseTrain += fit.MSE(zTrain, trainPred)
	sc.r2Train += fit.R2(zTrain, trainPred)
	sc.r2Test += fit.R2(zTest, testPred)
	sc.preds = append(sc.preds, testPred)
}

// tally counts the fits of one degree and those where the lasso solver hit
// its iteration limit.
type tally struct {
	fits, stalled int
}

func (s *Solver) fit(cfg sweep.Configuration, X *mat.Dense, z []float64, t *tally) (*fit.Model, error) {
	start := time.Now()
	m, err := fit.Fit(cfg.Method, X, z, cfg.Lambda, s.opts.Lasso)
	if s.opts.Observer != nil {
		s.opts.Observer.ObserveFit(cfg.Method.String(), cfg.Resampling.String(), time.Since(start))
	}
	t.fits++
	if err == nil && !m.Converged {
		t.stalled++
	}
	return m, err
}

func (s *Solver) warnStalled(cfg sweep.Configuration, degree int, t tally) {
	if t.stalled == 0 {
		return
	}
	s.logger.Warn().
		Str("method", cfg.Method.String()).
		Str("resampling", cfg.Resampling.String()).
		Float64("lambda", cfg.Lambda).
		Int("degree", degree).
		Int("unconverged", t.stalled).
		Int("fits", t.fits).
		Int("max_iter", s.lassoMaxIter()).
		Msg("lasso did not converge")
}

func (s *Solver) lassoMaxIter() int {
	if s.opts.Lasso.MaxIter > 0 {
		return s.opts.Lasso.MaxIter
	}
	return fit.DefaultLassoOptions().MaxIter
}

// finite rejects scores that cannot be placed on a figure axis.
func finite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errNonFinite
	}
	return nil
}

func (s *Solver) solveDegree(ctx context.Context, p *problem, cfg sweep.Configuration, degree int) (sweep.Record, error) {
	rec := sweep.Record{Degree: degree}
	var fits tally

	full, err := s.fit(cfg, p.xTrain, p.zTrain, &fits)
	if err != nil {
		return rec, err
	}
	rec.Beta = full.Coef

	var sc scores
	switch cfg.Resampling {
	case sweep.None:
		sc.add(full, p.xTrain, p.zTrain, p.xTest, p.zTest)

	case sweep.Bootstrap:
		rng := newRand(s.opts.Seed^streamBootstrap, uint64(degree))
		n := len(p.zTrain)
		for b := 0; b < s.opts.Bootstraps; b++ {
			if err := ctx.Err(); err != nil {
				return rec, err
			}
			idx := resample(rng, n)
			xb, zb := fit.Rows(p.xTrain, idx), fit.Pick(p.zTrain, idx)
			m, err := s.fit(cfg, xb, zb, &fits)
			if err != nil {
				return rec, err
			}
			sc.add(m, xb, zb, p.xTest, p.zTest)
		}

	case sweep.KFold:
		n := len(p.zTrain)
		for _, fold := range kFolds(n, s.opts.Folds, s.opts.Seed) {
			if err := ctx.Err(); err != nil {
				return rec, err
			}
			in := complement(n, fold)
			xIn, zIn := fit.Rows(p.xTrain, in), fit.Pick(p.zTrain, in)
			m, err := s.fit(cfg, xIn, zIn, &fits)
			if err != nil {
				return rec, err
			}
			sc.add(m, xIn, zIn, p.xTest, p.zTest)
			sc.heldOut += fit.MSE(fit.Pick(p.zTrain, fold), m.Predict(fit.Rows(p.xTrain, fold)))
		}
	}

	models := float64(len(sc.preds))
	t := decompose(p.zTest, sc.preds)
	rec.MSETrain = sc.mseTrain / models
	rec.R2Train = sc.r2Train / models
	rec.R2Test = sc.r2Test / models
	rec.Bias = t.bias
	rec.Variance = t.variance
	rec.Prediction = t.mean
	rec.MSETest = t.err
	if cfg.Resampling == sweep.KFold {
		rec.MSETest = sc.heldOut / models
	}
	s.warnStalled(cfg, degree, fits)
	return rec, finite(rec.MSETest)
}
