package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/frankestudy/internal/metrics"
	"github.com/agbru/frankestudy/internal/sysmon"
)

// rateHistory is the number of fit-rate samples kept for the sparkline.
const rateHistory = 40

// MetricsModel shows runtime memory, machine load, goroutines and the fit
// rate.
type MetricsModel struct {
	mem        metrics.MemorySnapshot
	system     sysmon.Stats
	goroutines int
	fits       int64
	rate       *RingBuffer
	lastSample time.Time
	width      int
	height     int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{rate: NewRingBuffer(rateHistory)}
}

// SetSize updates the panel dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats records a sample and derives the fit rate since the
// previous one.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	now := time.Now()
	if !m.lastSample.IsZero() {
		if dt := now.Sub(m.lastSample).Seconds(); dt > 0 {
			m.rate.Push(float64(msg.Fits-m.fits) / dt)
		}
	}
	m.lastSample = now
	m.mem = msg.MemorySnapshot
	m.system = msg.System
	m.goroutines = msg.Goroutines
	m.fits = msg.Fits
}

// Fits returns the last fit count seen.
func (m MetricsModel) Fits() int64 { return m.fits }

// View renders the metrics panel.
func (m MetricsModel) View() string {
	rows := []string{
		metricRow("Heap:", formatBytes(m.mem.HeapAlloc)+" / "+formatBytes(m.mem.Sys)),
		metricRow("GC cycles:", fmt.Sprintf("%d", m.mem.NumGC)),
		metricRow("CPU:", fmt.Sprintf("%.1f%%", m.system.CPUPercent)),
		metricRow("Memory:", fmt.Sprintf("%.1f%% of %s", m.system.MemPercent, formatBytes(m.system.MemTotal))),
		metricRow("Goroutines:", fmt.Sprintf("%d", m.goroutines)),
		metricRow("Fits:", fmt.Sprintf("%d (%.0f/s)", m.fits, m.rate.Last())),
	}
	spark := m.rate.Slice()
	if width := m.width - 6; width > 0 && len(spark) > width {
		spark = spark[len(spark)-width:]
	}
	rows = append(rows, " "+sparklineStyle.Render(RenderSparkline(spark)))
	return panelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0)).Render(strings.Join(rows, "\n"))
}

func metricRow(label, value string) string {
	cell := " " + labelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + valueStyle.Render(value)
	return cell + strings.Repeat(" ", max(0, 30-lipgloss.Width(cell)))
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	}
	return fmt.Sprintf("%d B", b)
}
