package tui

import (
	"time"

	"github.com/agbru/frankestudy/internal/metrics"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/sysmon"
)

// ProgressMsg carries one scenario transition with the aggregated progress.
type ProgressMsg struct {
	orchestration.AggregatedProgress
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// SummaryMsg carries the results presented at the end of the run.
type SummaryMsg struct {
	Results []orchestration.ScenarioResult
}

// ErrorMsg reports the first failure of the run.
type ErrorMsg struct {
	Err error
}

// StudyCompleteMsg is sent when ExecuteStudy and the summary returned.
type StudyCompleteMsg struct {
	ExitCode int
	Results  []orchestration.ScenarioResult
}

// TickMsg drives the periodic metrics sampling.
type TickMsg time.Time

// MemStatsMsg carries one runtime and system sample.
type MemStatsMsg struct {
	metrics.MemorySnapshot
	System     sysmon.Stats
	Fits       int64
	Goroutines int
}

// ContextCancelledMsg is sent when the run context ends before completion.
type ContextCancelledMsg struct {
	Err error
}
