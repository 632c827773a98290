package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestRecorderCounts(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveFit("ridge", "kfold", 2*time.Millisecond)
	r.ObserveFit("ridge", "kfold", time.Millisecond)
	r.ObserveFit("ols", "none", time.Millisecond)
	r.ObserveScenario("grid", nil)
	r.ObserveScenario("grid", errors.New("boom"))
	r.FigureWritten()

	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	tests := []struct {
		family string
		labels map[string]string
		want   float64
	}{
		{"frankestudy_fits_total", map[string]string{"method": "ridge", "resampling": "kfold"}, 2},
		{"frankestudy_fits_total", map[string]string{"method": "ols", "resampling": "none"}, 1},
		{"frankestudy_scenarios_total", map[string]string{"kind": "grid", "status": "error"}, 1},
		{"frankestudy_figures_written_total", nil, 1},
	}
	for _, tt := range tests {
		if got := counterValue(families, tt.family, tt.labels); got != tt.want {
			t.Errorf("%s%v = %v, want %v", tt.family, tt.labels, got, tt.want)
		}
	}
	if r.Fits() != 3 {
		t.Errorf("Fits() = %d, want 3", r.Fits())
	}
}

func TestRecorderWriteTextfile(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveFit("lasso", "bootstrap", time.Millisecond)
	path := filepath.Join(t.TempDir(), "frankestudy.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, want := range []string{
		`frankestudy_fits_total{method="lasso",resampling="bootstrap"} 1`,
		"frankestudy_fit_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestReadMemory(t *testing.T) {
	t.Parallel()
	snap := ReadMemory()
	if snap.HeapAlloc == 0 || snap.Sys == 0 {
		t.Errorf("ReadMemory() = %+v, want non-zero heap", snap)
	}
}

// counterValue finds the counter of family whose labels match exactly.
func counterValue(families []*dto.MetricFamily, family string, labels map[string]string) float64 {
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			if len(m.GetLabel()) != len(labels) {
				continue
			}
			match := true
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return -1
}
