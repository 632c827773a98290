package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/agbru/frankestudy/internal/format"
	"github.com/agbru/frankestudy/internal/study"
)

// scenarioStatus is the lifecycle of one scenario row.
type scenarioStatus int

const (
	statusPending scenarioStatus = iota
	statusRunning
	statusDone
	statusFailed
)

type scenarioRow struct {
	name     string
	category string
	status   scenarioStatus
	duration time.Duration
	figure   string
	err      error
}

// ScenariosModel lists the scenarios with their status.
type ScenariosModel struct {
	rows    []scenarioRow
	spinner spinner.Model
	offset  int
	width   int
	height  int
}

// NewScenariosModel creates one pending row per scenario.
func NewScenariosModel(scenarios []study.Scenario) ScenariosModel {
	rows := make([]scenarioRow, len(scenarios))
	for i, sc := range scenarios {
		rows[i] = scenarioRow{name: sc.Name, category: sc.Category}
	}
	return ScenariosModel{
		rows:    rows,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}
}

// SetSize updates the panel dimensions.
func (s *ScenariosModel) SetSize(w, h int) {
	s.width = w
	s.height = h
	s.clampOffset()
}

// Start marks row i as running.
func (s *ScenariosModel) Start(i int) {
	if i >= 0 && i < len(s.rows) {
		s.rows[i].status = statusRunning
		s.follow(i)
	}
}

// Finish records the outcome of row i.
func (s *ScenariosModel) Finish(i int, d time.Duration, figure string, err error) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	r := &s.rows[i]
	r.duration, r.figure, r.err = d, figure, err
	r.status = statusDone
	if err != nil {
		r.status = statusFailed
	}
}

// Counts returns the number of finished and failed rows.
func (s ScenariosModel) Counts() (done, failed int) {
	for _, r := range s.rows {
		switch r.status {
		case statusDone:
			done++
		case statusFailed:
			done++
			failed++
		}
	}
	return done, failed
}

// Scroll moves the visible window by delta rows.
func (s *ScenariosModel) Scroll(delta int) {
	s.offset += delta
	s.clampOffset()
}

// ScrollTo moves the window to the first or last rows.
func (s *ScenariosModel) ScrollTo(bottom bool) {
	s.offset = 0
	if bottom {
		s.offset = len(s.rows)
	}
	s.clampOffset()
}

func (s *ScenariosModel) visibleRows() int {
	return max(s.height-3, 1)
}

func (s *ScenariosModel) follow(i int) {
	if i < s.offset {
		s.offset = i
	} else if i >= s.offset+s.visibleRows() {
		s.offset = i - s.visibleRows() + 1
	}
	s.clampOffset()
}

func (s *ScenariosModel) clampOffset() {
	s.offset = max(0, min(s.offset, len(s.rows)-s.visibleRows()))
}

// View renders the visible rows.
func (s ScenariosModel) View() string {
	lines := []string{titleStyle.Render("Scenarios")}
	end := min(len(s.rows), s.offset+s.visibleRows())
	for _, r := range s.rows[s.offset:end] {
		lines = append(lines, s.renderRow(r))
	}
	return panelStyle.Width(max(s.width-2, 0)).Height(max(s.height-2, 0)).Render(strings.Join(lines, "\n"))
}

func (s ScenariosModel) renderRow(r scenarioRow) string {
	name := fmt.Sprintf("%-22s %s", r.name, dimStyle.Render(r.category))
	switch r.status {
	case statusRunning:
		return s.spinner.View() + " " + accentStyle.Render(name)
	case statusDone:
		return successStyle.Render("✓") + " " + name + " " + dimStyle.Render(format.FormatExecutionDuration(r.duration))
	case statusFailed:
		return errorStyle.Render("✗") + " " + name + " " + errorStyle.Render(r.err.Error())
	}
	return dimStyle.Render("· " + name)
}
