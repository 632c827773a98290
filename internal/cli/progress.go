package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/agbru/frankestudy/internal/format"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for the
// terminal. It prints each scenario description as the scenario starts,
// spins while it runs and prints one status line when it finishes.
type CLIProgressReporter struct {
	// Quiet suppresses everything but failures.
	Quiet bool
}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress consumes updates until the channel is closed.
func (r CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numScenarios int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numScenarios)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	styles := ui.CurrentStyles()

	var s Spinner
	if !r.Quiet {
		s = newSpinner(out)
	}
	for update := range progressChan {
		state := agg.Update(update)
		switch update.Stage {
		case orchestration.StageStarted:
			if r.Quiet {
				continue
			}
			fmt.Fprintln(out, update.Description)
			s.UpdateSuffix(" " + FormatSuffix(update.Name, state))
			s.Start()
		case orchestration.StageFinished:
			if s != nil {
				s.Stop()
			}
			if update.Err != nil {
				fmt.Fprintf(out, "%s %s: %v\n", styles.Error.Render("✗"), update.Name, update.Err)
				continue
			}
			if r.Quiet {
				continue
			}
			fmt.Fprintf(out, "%s %s %s\n",
				styles.Success.Render("✓"),
				styles.Value.Render(update.Name),
				styles.Muted.Render("("+format.FormatExecutionDuration(update.Duration)+")"))
		}
	}
}

// FormatSuffix renders the spinner text for a running scenario.
func FormatSuffix(name string, state orchestration.AggregatedProgress) string {
	return fmt.Sprintf("%s [%d/%d] %s",
		name, state.Update.Index+1, state.Total,
		format.FormatProgressBarWithETA(state.Progress, state.ETA, ProgressBarWidth))
}
