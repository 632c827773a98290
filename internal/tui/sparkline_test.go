package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()
	r := NewRingBuffer(3)
	if r.Len() != 0 || r.Last() != 0 || len(r.Slice()) != 0 {
		t.Fatal("new buffer should be empty")
	}
	for _, v := range []float64{1, 2, 3, 4} {
		r.Push(v)
	}
	got := r.Slice()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Slice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Slice()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Last() != 4 {
		t.Errorf("Last() = %v, want 4", r.Last())
	}
	small := NewRingBuffer(0)
	small.Push(7)
	if small.Len() != 1 || small.Last() != 7 {
		t.Error("non-positive capacity should hold one sample")
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"all zero", []float64{0, 0}, "▁▁"},
		{"scaled to max", []float64{0, 50, 100}, "▁▅█"},
		{"negative", []float64{-5, 10}, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	for name, b := range map[string]key.Binding{
		"Quit": km.Quit, "Pause": km.Pause, "Up": km.Up, "Down": km.Down, "Top": km.Top, "Bottom": km.Bottom,
	} {
		if !b.Enabled() || len(b.Keys()) == 0 {
			t.Errorf("%s binding is not usable", name)
		}
	}
	hasQ, hasCtrlC := false, false
	for _, k := range km.Quit.Keys() {
		hasQ = hasQ || k == "q"
		hasCtrlC = hasCtrlC || k == "ctrl+c"
	}
	if !hasQ || !hasCtrlC {
		t.Error("Quit should include q and ctrl+c")
	}
}
