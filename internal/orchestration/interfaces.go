package orchestration

import (
	"io"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/agbru/frankestudy/internal/plotting"
	"github.com/agbru/frankestudy/internal/sweep"
)

// Stage is the lifecycle point a ProgressUpdate reports.
type Stage int

const (
	// StageStarted is sent before a scenario sweeps.
	StageStarted Stage = iota
	// StageFinished is sent after a scenario rendered its figure or failed.
	StageFinished
)

// ProgressUpdate describes one scenario transition.
type ProgressUpdate struct {
	// Index is the scenario position in the study.
	Index       int
	Name        string
	Description string
	Stage       Stage
	// Figure is the written path, set on StageFinished when saving.
	Figure   string
	Duration time.Duration
	Err      error
}

// ProgressReporter defines the interface for displaying study progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations render spinners or dashboards while the
// orchestrator only publishes updates.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed.
	// It must call wg.Done when it returns.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving scenario updates.
	//   - numScenarios: The number of scenarios that will run.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numScenarios int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numScenarios int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numScenarios int, out io.Writer) {
	f(wg, progressChan, numScenarios, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

// ResultPresenter renders the end-of-run summary.
type ResultPresenter interface {
	// PresentSummary displays one row per scenario.
	PresentSummary(results []ScenarioResult, out io.Writer)
	// HandleError reports the first failure and returns its exit code.
	HandleError(err error, out io.Writer) int
}

// ScenarioObserver receives scenario outcomes, typically for metrics.
type ScenarioObserver interface {
	ObserveScenario(kind string, err error)
	FigureWritten()
}

// FigureRenderer draws the study figures. *plotting.Renderer implements it.
type FigureRenderer interface {
	MSE(degrees []float64, train, test [][]float64, titles []string, save plotting.Save) (string, error)
	MSER2(degrees, mseTrain, mseTest, r2Train, r2Test []float64, save plotting.Save) (string, error)
	Coefficients(degrees []float64, beta *mat.Dense, n, maxDegrees int, save plotting.Save) (string, error)
	BiasVariance(degrees, bias, variance, mse []float64, save plotting.Save) (string, error)
	BiasVarianceLambdas(cmp *sweep.Comparison, save plotting.Save) (string, error)
	Gridsearch(grid *sweep.GridResult, title string, save plotting.Save) (string, error)
}

var _ FigureRenderer = (*plotting.Renderer)(nil)
