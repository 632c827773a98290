package sysmon

import (
	"context"
	"testing"
)

func TestSampleRanges(t *testing.T) {
	t.Parallel()
	s := Sample(context.Background())
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.MemUsed > s.MemTotal {
		t.Errorf("MemUsed %d exceeds MemTotal %d", s.MemUsed, s.MemTotal)
	}
}

func TestClampPercent(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {42.5, 42.5}, {100, 100}, {101, 100},
	}
	for _, tt := range tests {
		if got := clampPercent(tt.in); got != tt.want {
			t.Errorf("clampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSampleCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := Sample(ctx)
	if s.CPUPercent < 0 || s.MemPercent < 0 {
		t.Errorf("cancelled sample = %+v", s)
	}
}
