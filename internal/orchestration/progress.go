package orchestration

import (
	"time"

	"github.com/agbru/frankestudy/internal/format"
)

// ProgressAggregator turns scenario updates into overall study progress.
// It wraps format.ProgressWithETA with one task per scenario, so the CLI
// and the TUI share the same aggregation and ETA logic.
type ProgressAggregator struct {
	state        *format.ProgressWithETA
	numScenarios int
	done         int
	failed       int
}

// NewProgressAggregator creates an aggregator for numScenarios scenarios.
// Returns nil if numScenarios <= 0.
func NewProgressAggregator(numScenarios int) *ProgressAggregator {
	if numScenarios <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:        format.NewProgressWithETA(numScenarios),
		numScenarios: numScenarios,
	}
}

// AggregatedProgress is the study state after one update.
type AggregatedProgress struct {
	Update ProgressUpdate
	// Progress is the fraction of scenarios finished, in [0, 1].
	Progress float64
	ETA      time.Duration
	Done     int
	Failed   int
	Total    int
}

// Update applies one update. Only StageFinished moves the progress.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	var progress float64
	var eta time.Duration
	if update.Stage == StageFinished {
		a.done++
		if update.Err != nil {
			a.failed++
		}
		progress, eta = a.state.UpdateWithETA(update.Index, 1)
	} else {
		progress, eta = a.state.CalculateAverage(), a.state.GetETA()
	}
	return AggregatedProgress{
		Update:   update,
		Progress: progress,
		ETA:      eta,
		Done:     a.done,
		Failed:   a.failed,
		Total:    a.numScenarios,
	}
}

// CalculateAverage returns the current progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumScenarios returns the number of scenarios being tracked.
func (a *ProgressAggregator) NumScenarios() int {
	return a.numScenarios
}
