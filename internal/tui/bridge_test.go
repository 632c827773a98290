package tui

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/orchestration"
)

// recorder collects the messages the bridge sends.
type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func TestTUIProgressReporterForwardsUpdates(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	reporter := &TUIProgressReporter{ref: rec}

	ch := make(chan orchestration.ProgressUpdate, 4)
	ch <- orchestration.ProgressUpdate{Index: 0, Stage: orchestration.StageStarted}
	ch <- orchestration.ProgressUpdate{Index: 0, Stage: orchestration.StageFinished}
	ch <- orchestration.ProgressUpdate{Index: 1, Stage: orchestration.StageStarted}
	ch <- orchestration.ProgressUpdate{Index: 1, Stage: orchestration.StageFinished}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 2, nil)
	wg.Wait()

	if len(rec.msgs) != 5 {
		t.Fatalf("sent %d messages, want 4 progress + done", len(rec.msgs))
	}
	last, ok := rec.msgs[3].(ProgressMsg)
	if !ok || last.Progress != 1 || last.Done != 2 {
		t.Errorf("final progress message = %+v", rec.msgs[3])
	}
	if _, ok := rec.msgs[4].(ProgressDoneMsg); !ok {
		t.Errorf("last message = %T, want ProgressDoneMsg", rec.msgs[4])
	}
}

func TestTUIProgressReporterNoScenarios(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	reporter := &TUIProgressReporter{ref: rec}
	ch := make(chan orchestration.ProgressUpdate, 1)
	ch <- orchestration.ProgressUpdate{}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
	if len(rec.msgs) != 0 {
		t.Errorf("sent %d messages for an empty study", len(rec.msgs))
	}
}

func TestTUIResultPresenter(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	presenter := &TUIResultPresenter{ref: rec}

	results := []orchestration.ScenarioResult{{Name: "a"}}
	presenter.PresentSummary(results, io.Discard)
	code := presenter.HandleError(context.DeadlineExceeded, io.Discard)
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if len(rec.msgs) != 2 {
		t.Fatalf("sent %d messages, want 2", len(rec.msgs))
	}
	if s, ok := rec.msgs[0].(SummaryMsg); !ok || len(s.Results) != 1 {
		t.Errorf("first message = %+v", rec.msgs[0])
	}
	if e, ok := rec.msgs[1].(ErrorMsg); !ok || !errors.Is(e.Err, context.DeadlineExceeded) {
		t.Errorf("second message = %+v", rec.msgs[1])
	}
}

func TestProgramRefWithoutProgram(t *testing.T) {
	t.Parallel()
	var ref programRef
	ref.Send(ProgressDoneMsg{}) // must not panic
}
