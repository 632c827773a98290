package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/frankestudy/internal/config"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/study"
	"github.com/agbru/frankestudy/internal/ui"
)

// DefaultTerminalWidth is used when the terminal size is unknown.
const DefaultTerminalWidth = 80

// FinishedMessage closes a complete run.
const FinishedMessage = "Finished all results for FrankeFunction. "

// PrintStudyHeader displays the run configuration before the first
// scenario starts.
//
// Parameters:
//   - cfg: The application configuration.
//   - st: The study about to run, after scenario selection.
//   - out: The writer for standard output.
func PrintStudyHeader(cfg config.AppConfig, st *study.Study, out io.Writer) {
	s := ui.CurrentStyles()
	fmt.Fprintln(out, s.Title.Render("--- Study Configuration ---"))
	fmt.Fprintf(out, "Sample: %s Franke grid, noise σ=%s, seed %s.\n",
		s.Info.Render(fmt.Sprintf("%d×%d", st.Sample.Nx, st.Sample.Ny)),
		s.Info.Render(fmt.Sprintf("%g", st.Sample.Noise)),
		s.Info.Render(fmt.Sprintf("%d", st.Sample.Seed)))
	fmt.Fprintf(out, "Resampling: %s bootstraps, %s folds, test size %s.\n",
		s.Info.Render(fmt.Sprintf("%d", cfg.Bootstraps)),
		s.Info.Render(fmt.Sprintf("%d", cfg.Folds)),
		s.Info.Render(fmt.Sprintf("%g", cfg.TestFraction)))
	fmt.Fprintf(out, "Output: %s (%s), %s scenarios, timeout %s.\n",
		s.Value.Render(cfg.OutputDir), cfg.Format,
		s.Info.Render(fmt.Sprintf("%d", len(st.Scenarios))),
		s.Warning.Render(cfg.Timeout.String()))
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s, %s grid jobs.\n",
		s.Info.Render(fmt.Sprintf("%d", runtime.NumCPU())),
		s.Info.Render(runtime.Version()),
		s.Info.Render(fmt.Sprintf("%d", cfg.Jobs)))
	fmt.Fprintf(out, "\n%s\n", s.Title.Render("--- Starting Study ---"))
}

// FormatRule returns a horizontal rule of width dashes.
func FormatRule(width int) string {
	if width < 1 {
		width = DefaultTerminalWidth
	}
	return strings.Repeat("-", width)
}

// DisplayFinished prints the closing message and a rule spanning width
// columns, followed by an empty line.
func DisplayFinished(out io.Writer, width int) {
	fmt.Fprintln(out, FinishedMessage)
	fmt.Fprintln(out, FormatRule(width)+"\n")
}

// DisplayFigureIndex lists the figures written by the run. Terminals cannot
// show the figures themselves, so the paths are printed instead.
func DisplayFigureIndex(results []orchestration.ScenarioResult, out io.Writer) {
	s := ui.CurrentStyles()
	var paths []string
	for _, res := range results {
		if res.Err == nil && res.Figure != "" {
			paths = append(paths, res.Figure)
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(out, s.Muted.Render("No figures were written."))
		return
	}
	fmt.Fprintln(out, s.Title.Render("Figures:"))
	for i, p := range paths {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, s.Value.Render(p))
	}
}
