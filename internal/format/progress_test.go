package format

import (
	"sync"
	"testing"
	"time"
)

func TestProgressStateClampsAndIgnoresUnknownTasks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		tasks   int
		updates map[int]float64
		want    float64
	}{
		{"empty tracker", 0, map[int]float64{0: 1}, 0},
		{"no updates", 3, nil, 0},
		{"partial", 4, map[int]float64{0: 1, 1: 0.5}, 0.375},
		{"over one clamps", 2, map[int]float64{0: 1.5, 1: 1}, 1},
		{"negative clamps", 2, map[int]float64{0: -0.5, 1: 0.5}, 0.25},
		{"out of range ignored", 2, map[int]float64{-1: 1, 2: 1, 1: 1}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewProgressState(tt.tasks)
			for i, v := range tt.updates {
				s.Update(i, v)
			}
			if got := s.CalculateAverage(); got != tt.want {
				t.Errorf("CalculateAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewProgressStateNegative(t *testing.T) {
	t.Parallel()
	if s := NewProgressState(-2); len(s.values) != 0 {
		t.Errorf("NewProgressState(-2) holds %d tasks", len(s.values))
	}
}

func TestUpdateWithETAOneScenarioAtATime(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(4)
	if p.numTasks != 4 || p.startTime.IsZero() {
		t.Fatalf("tracker not initialised: %+v", p)
	}
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before any progress = %v, want 0", eta)
	}

	for i, want := range []float64{0.25, 0.5, 0.75, 1} {
		time.Sleep(time.Millisecond)
		progress, eta := p.UpdateWithETA(i, 1)
		if progress != want {
			t.Errorf("after scenario %d: progress = %v, want %v", i, progress, want)
		}
		if eta < 0 || eta > maxETA {
			t.Errorf("after scenario %d: ETA %v out of range", i, eta)
		}
		if want == 1 && eta != 0 {
			t.Errorf("ETA at completion = %v, want 0", eta)
		}
	}
	if p.Elapsed() <= 0 {
		t.Error("Elapsed() should be positive")
	}
}

func TestUpdateWithETARepeatedValueKeepsRate(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	time.Sleep(time.Millisecond)
	p.UpdateWithETA(0, 1)
	rate := p.progressRate
	if rate <= 0 {
		t.Fatalf("progressRate = %v after progress, want > 0", rate)
	}
	p.UpdateWithETA(0, 1)
	if p.progressRate != rate {
		t.Errorf("an update without progress changed the rate: %v -> %v", rate, p.progressRate)
	}
}

func TestGetETAFromRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress float64
		rate     float64
		want     time.Duration
	}{
		{"half done at ten percent per second", 0.5, 0.1, 5 * time.Second},
		{"no rate yet", 0.5, 0, 0},
		{"done", 1, 0.1, 0},
		{"capped", 0.001, 1e-9, maxETA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProgressWithETA(1)
			p.Update(0, tt.progress)
			p.progressRate = tt.rate
			got := p.GetETA()
			if diff := got - tt.want; diff < -time.Millisecond || diff > time.Millisecond {
				t.Errorf("GetETA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressWithETAConcurrentUpdates(t *testing.T) {
	t.Parallel()
	const n = 64
	p := NewProgressWithETA(n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.UpdateWithETA(i, 1)
			_ = p.GetETA()
		}()
	}
	wg.Wait()
	if got := p.CalculateAverage(); got != 1 {
		t.Errorf("CalculateAverage() = %v after all scenarios, want 1", got)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{-time.Second, "calculating..."},
		{0, "calculating..."},
		{999 * time.Millisecond, "< 1s"},
		{59 * time.Second, "59s"},
		{3 * time.Minute, "3m"},
		{4*time.Minute + 5*time.Second, "4m5s"},
		{5 * time.Hour, "5h"},
		{2*time.Hour + 7*time.Minute + 30*time.Second, "2h7m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBarRendering(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{0.74, 4, "██░░"},
		{1, 4, "████"},
		{2, 3, "███"},
		{-1, 3, "░░░"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		eta      time.Duration
		want     string
	}{
		{0, 0, "[░░░░]   0.0% ETA: calculating..."},
		{0.5, 30 * time.Second, "[██░░]  50.0% ETA: 30s"},
		{1.3, 0, "[████] 100.0% ETA: calculating..."},
	}
	for _, tt := range tests {
		if got := FormatProgressBarWithETA(tt.progress, tt.eta, 4); got != tt.want {
			t.Errorf("FormatProgressBarWithETA(%v, %v) = %q, want %q", tt.progress, tt.eta, got, tt.want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0µs"},
		{750 * time.Nanosecond, "0µs"},
		{42 * time.Microsecond, "42µs"},
		{3 * time.Millisecond, "3ms"},
		{999 * time.Millisecond, "999ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90*time.Second + 400*time.Microsecond, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
