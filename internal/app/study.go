package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/frankestudy/internal/cli"
	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/franke"
	"github.com/agbru/frankestudy/internal/logging"
	"github.com/agbru/frankestudy/internal/metrics"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/plotting"
	"github.com/agbru/frankestudy/internal/solver"
	"github.com/agbru/frankestudy/internal/sweep"
	"github.com/agbru/frankestudy/internal/tui"
)

// runStudy builds the pipeline, runs every selected scenario and prints the
// closing lines. show lists the written figures at the end.
func (a *Application) runStudy(ctx context.Context, out io.Writer, show bool) int {
	logOut := a.ErrWriter
	if a.Config.TUI {
		logOut = io.Discard
	}
	logger := func(component string) zerolog.Logger {
		return logging.NewLogger(logOut, component).Zerolog()
	}

	appLog := a.Logger
	if appLog == nil {
		appLog = logging.NewLogger(logOut, "app")
	}
	appLog.Info("study started",
		logging.Int("scenarios", len(a.Study.Scenarios)),
		logging.Uint64("seed", a.Study.Sample.Seed),
		logging.Int("nx", a.Study.Sample.Nx),
		logging.Int("ny", a.Study.Sample.Ny),
		logging.Float64("noise", a.Study.Sample.Noise),
		logging.String("out", a.Config.OutputDir),
	)
	start := time.Now()

	recorder := metrics.NewRecorder()
	env, err := a.newEnvironment(recorder, logger)
	if err != nil {
		appLog.Error("building pipeline", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	var (
		exitCode int
		results  []orchestration.ScenarioResult
	)
	if a.Config.TUI {
		exitCode, results = tui.Run(ctx, a.Study, env, recorder)
	} else {
		exitCode, results = a.runCLI(ctx, env, out)
	}
	if err := ctx.Err(); err != nil && exitCode == apperrors.ExitSuccess && len(results) < len(a.Study.Scenarios) {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "study", Limit: a.Config.Timeout}
		}
		fmt.Fprintf(a.ErrWriter, "Run stopped after %d of %d scenarios: %v\n", len(results), len(a.Study.Scenarios), err)
		exitCode = apperrors.ExitCode(err)
	}

	cli.DisplayFinished(out, a.terminalWidth())
	if show {
		cli.DisplayFigureIndex(results, out)
	}
	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		}
	}
	appLog.Info("study finished",
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("results", len(results)),
		logging.Int("exit_code", exitCode),
	)
	return exitCode
}

// runCLI runs the study with the spinner reporter and the summary table.
func (a *Application) runCLI(ctx context.Context, env orchestration.Environment, out io.Writer) (int, []orchestration.ScenarioResult) {
	if !a.Config.Quiet {
		cli.PrintStudyHeader(a.Config, a.Study, out)
	}
	reporter := cli.CLIProgressReporter{Quiet: a.Config.Quiet}
	results := orchestration.ExecuteStudy(ctx, a.Study, env, reporter, out)

	summaryOut := out
	if a.Config.Quiet {
		summaryOut = io.Discard
	}
	return orchestration.Summarize(results, cli.CLIResultPresenter{}, summaryOut), results
}

// newEnvironment synthesizes the sample and wires the solver, the renderer
// and the metrics recorder together.
func (a *Application) newEnvironment(recorder *metrics.Recorder, logger func(string) zerolog.Logger) (orchestration.Environment, error) {
	sample, err := franke.Generate(a.Study.Sample)
	if err != nil {
		return orchestration.Environment{}, apperrors.WrapError(err, "generating sample")
	}

	opts := solver.DefaultOptions()
	opts.Bootstraps = a.Config.Bootstraps
	opts.Folds = a.Config.Folds
	opts.TestFraction = a.Config.TestFraction
	opts.Seed = a.Study.Sample.Seed
	opts.Observer = recorder
	s, err := solver.New(opts)
	if err != nil {
		return orchestration.Environment{}, apperrors.WrapError(err, "creating solver")
	}
	s.SetLogger(logger("solver"))

	style := plotting.DefaultStyle()
	style.Format = a.Config.Format
	renderer, err := plotting.NewRenderer(a.Config.OutputDir, style)
	if err != nil {
		return orchestration.Environment{}, apperrors.WrapError(err, "creating renderer")
	}
	renderer.SetLogger(logger("plotting"))

	return orchestration.Environment{
		Sample:   sample,
		Solver:   s,
		Renderer: renderer,
		Save:     true,
		Grid:     sweep.GridOptions{Jobs: a.Config.Jobs},
		Observer: recorder,
		Logger:   logger("orchestration"),
	}, nil
}
