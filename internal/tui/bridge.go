package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the bridge keeps a pointer that survives copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if any.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// sender is the part of programRef the bridge needs; tests record messages.
type sender interface {
	Send(msg tea.Msg)
}

// TUIProgressReporter implements orchestration.ProgressReporter by
// forwarding aggregated updates to the dashboard.
type TUIProgressReporter struct {
	ref sender
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg values.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numScenarios int, _ io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numScenarios)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		t.ref.Send(ProgressMsg{agg.Update(update)})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements orchestration.ResultPresenter by sending
// the summary to the dashboard instead of writing it.
type TUIResultPresenter struct {
	ref sender
}

var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentSummary sends the results to the dashboard.
func (t *TUIResultPresenter) PresentSummary(results []orchestration.ScenarioResult, _ io.Writer) {
	t.ref.Send(SummaryMsg{Results: results})
}

// HandleError sends the failure to the dashboard and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err})
	return apperrors.ExitCode(err)
}
