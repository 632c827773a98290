package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates derived from very slow early progress.
const maxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest rate sample in the exponentially
// smoothed progress rate.
const etaSmoothing = 0.3

// ProgressState tracks completion fractions of a fixed number of tasks.
type ProgressState struct {
	values []float64
}

// NewProgressState creates a tracker for n tasks, all at zero.
func NewProgressState(n int) *ProgressState {
	if n < 0 {
		n = 0
	}
	return &ProgressState{values: make([]float64, n)}
}

// Update sets the fraction of task i, clamped to [0,1]. Unknown indices are
// ignored.
func (s *ProgressState) Update(i int, value float64) {
	if i < 0 || i >= len(s.values) {
		return
	}
	s.values[i] = clamp01(value)
}

// CalculateAverage returns the mean fraction across tasks.
func (s *ProgressState) CalculateAverage() float64 {
	if len(s.values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.values {
		sum += v
	}
	return sum / float64(len(s.values))
}

// ProgressWithETA extends ProgressState with a smoothed completion rate and
// the resulting time-remaining estimate. It is safe for concurrent use.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	numTasks     int
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker for numTasks tasks starting now.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numTasks),
		numTasks:      numTasks,
		startTime:     now,
		lastUpdate:    now,
	}
}

// Update records the fraction of task i without returning the estimate.
func (p *ProgressWithETA) Update(i int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ProgressState.Update(i, value)
}

// CalculateAverage returns the mean fraction across tasks.
func (p *ProgressWithETA) CalculateAverage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ProgressState.CalculateAverage()
}

// UpdateWithETA records the fraction of task i and returns the overall
// progress together with the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(i int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ProgressState.Update(i, value)
	progress := p.ProgressState.CalculateAverage()

	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && progress > p.lastProgress {
		rate := (progress - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothing*rate + (1-etaSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}
	return progress, p.etaLocked(progress)
}

// GetETA returns the current estimate without recording progress.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.ProgressState.CalculateAverage())
}

// Elapsed is the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

func (p *ProgressWithETA) etaLocked(progress float64) time.Duration {
	if p.progressRate <= 0 || progress >= 1 {
		return 0
	}
	secs := (1 - progress) / p.progressRate
	if secs > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(secs * float64(time.Second))
}

// FormatETA renders an estimate compactly: "45s", "2m30s", "1h15m".
// Unknown estimates read "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// ProgressBar renders a bar of length runes using full and light shade blocks.
func ProgressBar(progress float64, length int) string {
	if length < 1 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("\u2588", filled) + strings.Repeat("\u2591", length-filled)
}

// FormatProgressBarWithETA renders the bracketed bar followed by the
// percentage and ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
