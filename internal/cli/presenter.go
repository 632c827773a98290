package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/format"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for the
// terminal.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentSummary prints one row per scenario: name, category, duration and
// status. Columns are padded on the rendered width so colour codes do not
// break the alignment.
func (CLIResultPresenter) PresentSummary(results []orchestration.ScenarioResult, out io.Writer) {
	if len(results) == 0 {
		return
	}
	styles := ui.CurrentStyles()
	header := []string{"Scenario", "Category", "Duration", "Status"}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status := styles.Success.Render("ok")
		if res.Err != nil {
			status = styles.Error.Render("failed")
		}
		rows = append(rows, []string{
			styles.Value.Render(res.Name),
			styles.Muted.Render(res.Category),
			styles.Info.Render(formatDuration(res)),
			status,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	fmt.Fprintf(out, "\n%s\n", styles.Title.Render("--- Study Summary ---"))
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = padRight(styles.Label.Underline(true).Render(h), widths[i])
	}
	fmt.Fprintln(out, strings.Join(cells, "   "))
	for _, row := range rows {
		for i, cell := range row {
			cells[i] = padRight(cell, widths[i])
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, "   "), " "))
	}
}

func formatDuration(res orchestration.ScenarioResult) string {
	if res.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(res.Duration)
}

// padRight pads s with spaces up to width visible cells.
func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// HandleError prints the first failure and returns its exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	styles := ui.CurrentStyles()
	code := apperrors.ExitCode(err)
	switch code {
	case apperrors.ExitErrorTimeout:
		fmt.Fprintf(out, "%s the run exceeded its timeout: %v\n", styles.Warning.Render("Timeout:"), err)
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(out, "%s %v\n", styles.Warning.Render("Canceled:"), err)
	default:
		fmt.Fprintf(out, "%s %v\n", styles.Error.Render("Error:"), err)
	}
	return code
}
