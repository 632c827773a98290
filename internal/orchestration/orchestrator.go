package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/franke"
	"github.com/agbru/frankestudy/internal/plotting"
	"github.com/agbru/frankestudy/internal/study"
	"github.com/agbru/frankestudy/internal/sweep"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. Every scenario publishes a start and a finish update.
const ProgressBufferMultiplier = 2

const tracerName = "github.com/agbru/frankestudy/internal/orchestration"

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	Name     string
	Category string
	Kind     study.Kind
	// Figure is the written path; empty when saving is disabled or the
	// scenario failed.
	Figure   string
	Duration time.Duration
	Err      error
}

// Environment carries the collaborators shared by every scenario.
type Environment struct {
	Sample   *franke.Sample
	Solver   sweep.Solver
	Renderer FigureRenderer
	// Save enables writing figures under the renderer root.
	Save bool
	Grid sweep.GridOptions
	// Observer is optional.
	Observer ScenarioObserver
	Logger   zerolog.Logger
}

// ExecuteStudy runs the scenarios of st strictly in order and returns one
// result per scenario attempted. Progress is published to reporter, which
// runs in its own goroutine and has drained every update when ExecuteStudy
// returns. A cancelled context stops the run after the current scenario.
func ExecuteStudy(ctx context.Context, st *study.Study, env Environment, reporter ProgressReporter, out io.Writer) []ScenarioResult {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	n := len(st.Scenarios)
	progressChan := make(chan ProgressUpdate, n*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, n, out)

	tracer := otel.Tracer(tracerName)
	results := make([]ScenarioResult, 0, n)
	for i, sc := range st.Scenarios {
		if err := ctx.Err(); err != nil {
			env.Logger.Debug().Str("scenario", sc.Name).Msg("skipping scenario, run cancelled")
			break
		}
		progressChan <- ProgressUpdate{Index: i, Name: sc.Name, Description: sc.Description, Stage: StageStarted}

		res := runTraced(ctx, tracer, sc, env)
		results = append(results, res)

		if env.Observer != nil {
			env.Observer.ObserveScenario(string(sc.Kind), res.Err)
			if res.Figure != "" {
				env.Observer.FigureWritten()
			}
		}
		logScenario(env.Logger, res)
		progressChan <- ProgressUpdate{
			Index:       i,
			Name:        sc.Name,
			Description: sc.Description,
			Stage:       StageFinished,
			Figure:      res.Figure,
			Duration:    res.Duration,
			Err:         res.Err,
		}
	}

	close(progressChan)
	displayWg.Wait()
	return results
}

func runTraced(ctx context.Context, tracer trace.Tracer, sc study.Scenario, env Environment) ScenarioResult {
	ctx, span := tracer.Start(ctx, "scenario "+sc.Name, trace.WithAttributes(
		attribute.String("scenario.name", sc.Name),
		attribute.String("scenario.category", sc.Category),
		attribute.String("scenario.kind", string(sc.Kind)),
		attribute.String("scenario.method", sc.Base.Method.String()),
		attribute.Int("scenario.max_degree", sc.Base.MaxDegree),
	))
	defer span.End()

	start := time.Now()
	figure, err := runScenario(ctx, sc, env)
	res := ScenarioResult{
		Name:     sc.Name,
		Category: sc.Category,
		Kind:     sc.Kind,
		Figure:   figure,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if figure != "" {
		span.SetAttributes(attribute.String("scenario.figure", figure))
	}
	return res
}

func logScenario(l zerolog.Logger, res ScenarioResult) {
	if res.Err != nil {
		l.Error().Err(res.Err).Str("scenario", res.Name).Dur("duration", res.Duration).Msg("scenario failed")
		return
	}
	l.Info().Str("scenario", res.Name).Str("figure", res.Figure).Dur("duration", res.Duration).Msg("scenario done")
}

// runScenario sweeps and renders one scenario, returning the figure path.
func runScenario(ctx context.Context, sc study.Scenario, env Environment) (string, error) {
	save := plotting.Save{Enabled: env.Save, Dir: sc.Category, Name: sc.Name}

	switch sc.Kind {
	case study.KindDegree:
		res, err := sweep.Degrees(ctx, env.Solver, env.Sample, sc.Base)
		if err != nil {
			return "", err
		}
		return renderDegree(env.Renderer, sc, res, save)

	case study.KindPanels:
		train := make([][]float64, 0, len(sc.Resamplings))
		test := make([][]float64, 0, len(sc.Resamplings))
		var degrees []float64
		for _, r := range sc.Resamplings {
			cfg := sc.Base
			cfg.Resampling = r
			res, err := sweep.Degrees(ctx, env.Solver, env.Sample, cfg)
			if err != nil {
				return "", err
			}
			degrees = res.Degrees()
			train = append(train, res.Column(sweep.MSETrain))
			test = append(test, res.Column(sweep.MSETest))
		}
		return env.Renderer.MSE(degrees, train, test, sc.Titles, save)

	case study.KindGrid:
		grid, err := sweep.Grid(ctx, env.Solver, env.Sample, sc.Base, sweep.LambdaAxis, sc.Lambdas, sc.Metric, env.Grid)
		if err != nil {
			return "", err
		}
		return env.Renderer.Gridsearch(grid, sc.Title, save)

	case study.KindComparison:
		cmp, err := sweep.Compare(ctx, env.Solver, env.Sample, sc.Base, sc.Methods, sc.Lambdas)
		if err != nil {
			return "", err
		}
		return env.Renderer.BiasVarianceLambdas(cmp, save)
	}
	return "", apperrors.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown scenario kind %q", sc.Kind)}
}

func renderDegree(r FigureRenderer, sc study.Scenario, res *sweep.Result, save plotting.Save) (string, error) {
	degrees := res.Degrees()
	switch sc.Plot {
	case study.PlotMSER2:
		return r.MSER2(degrees,
			res.Column(sweep.MSETrain), res.Column(sweep.MSETest),
			res.Column(sweep.R2Train), res.Column(sweep.R2Test), save)
	case study.PlotBetas:
		return r.Coefficients(degrees, res.BetaMatrix(sc.Betas), sc.Betas, sc.PlotDegrees, save)
	case study.PlotBiasVariance:
		return r.BiasVariance(degrees, res.Column(sweep.Bias), res.Column(sweep.Variance), res.Column(sweep.MSETest), save)
	}
	return "", apperrors.ValidationError{Field: "plot", Message: fmt.Sprintf("plot %q not available for kind %q", sc.Plot, sc.Kind)}
}

// Summarize hands the results to the presenter and returns the exit code of
// the run: success when every scenario succeeded, otherwise the code of the
// first failure. A nil presenter only computes the code.
func Summarize(results []ScenarioResult, presenter ResultPresenter, out io.Writer) int {
	if presenter != nil {
		presenter.PresentSummary(results, out)
	}
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		if presenter != nil {
			return presenter.HandleError(res.Err, out)
		}
		return apperrors.ExitCode(res.Err)
	}
	return apperrors.ExitSuccess
}
