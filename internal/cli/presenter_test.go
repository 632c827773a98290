package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/orchestration"
)

func TestPresentSummary(t *testing.T) {
	useNoColor(t)
	results := []orchestration.ScenarioResult{
		{Name: "MSER2_OLS", Category: "MSER2", Duration: 2 * time.Second},
		{Name: "Lasso_crossval_grid", Category: "Gridsearch", Duration: 0, Err: errors.New("boom")},
	}
	var out bytes.Buffer
	CLIResultPresenter{}.PresentSummary(results, &out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
	if lines[0] != "--- Study Summary ---" {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Scenario") || !strings.Contains(lines[1], "Status") {
		t.Errorf("header = %q", lines[1])
	}
	if !strings.Contains(lines[2], "2s") || !strings.HasSuffix(lines[2], "ok") {
		t.Errorf("success row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "< 1µs") || !strings.HasSuffix(lines[3], "failed") {
		t.Errorf("failure row = %q", lines[3])
	}
	// Columns line up.
	if strings.Index(lines[2], "MSER2 ") != strings.Index(lines[3], "Gridsearch") {
		t.Errorf("category column misaligned:\n%s\n%s", lines[2], lines[3])
	}
}

func TestPresentSummaryEmpty(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	CLIResultPresenter{}.PresentSummary(nil, &out)
	if out.Len() != 0 {
		t.Errorf("empty summary printed %q", out.String())
	}
}

func TestHandleError(t *testing.T) {
	useNoColor(t)
	tests := []struct {
		name   string
		err    error
		code   int
		prefix string
	}{
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric, "Error: boom"},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout:"},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled, "Canceled:"},
		{"config", apperrors.NewConfigError("bad"), apperrors.ExitErrorConfig, "Error: bad"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if code := (CLIResultPresenter{}).HandleError(tt.err, &out); code != tt.code {
			t.Errorf("%s: HandleError() = %d, want %d", tt.name, code, tt.code)
		}
		if !strings.HasPrefix(out.String(), tt.prefix) {
			t.Errorf("%s: output %q, want prefix %q", tt.name, out.String(), tt.prefix)
		}
	}
}
