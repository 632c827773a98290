package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/frankestudy/internal/format"
)

// HeaderModel renders the top bar: title, sample, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	sample    string
	width     int
}

// NewHeaderModel creates a header describing sample.
func NewHeaderModel(sample string) HeaderModel {
	return HeaderModel{startTime: time.Now(), sample: sample}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed is the run time so far, or the total once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	sep := dimStyle.Render(" | ")
	row := titleStyle.Render("Franke Study") + sep +
		dimStyle.Render(h.sample) + sep +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}
