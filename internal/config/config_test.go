package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"
)

// TestParseConfigDefaults checks the defaults reproduce the original run.
func TestParseConfigDefaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("frankestudy", nil, &buf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Seed != DefaultSeed || cfg.Nx != 16 || cfg.Ny != 16 {
		t.Errorf("unexpected sample defaults: %+v", cfg)
	}
	if cfg.OutputDir != "./Plots" || cfg.Format != "pdf" {
		t.Errorf("unexpected output defaults: dir=%q format=%q", cfg.OutputDir, cfg.Format)
	}
	if cfg.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", cfg.Jobs)
	}
	seed, nx, ny, noise := cfg.SampleOverrides()
	if seed || nx || ny || noise {
		t.Error("no sample override should be reported for defaults")
	}
}

// TestParseConfigFlags checks explicit flags and override tracking.
func TestParseConfigFlags(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("frankestudy", []string{"--seed", "7", "--nx", "20", "--format", "svg", "-y", "--jobs", "4"}, &buf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Seed != 7 || cfg.Nx != 20 || cfg.Format != "svg" || !cfg.Yes || cfg.Jobs != 4 {
		t.Errorf("flags not applied: %+v", cfg)
	}
	seed, nx, ny, _ := cfg.SampleOverrides()
	if !seed || !nx || ny {
		t.Errorf("SampleOverrides() = %v %v %v, want true true false", seed, nx, ny)
	}
}

// TestEnvOverrides checks the CLI > env > default priority.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("FRANKE_SEED", "99")
	t.Setenv("FRANKE_FOLDS", "10")
	t.Setenv("FRANKE_TIMEOUT", "90s")
	t.Setenv("FRANKE_QUIET", "yes")

	var buf bytes.Buffer
	cfg, err := ParseConfig("frankestudy", []string{"--folds", "3"}, &buf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, want 99 from env", cfg.Seed)
	}
	if cfg.Folds != 3 {
		t.Errorf("Folds = %d, want 3 from flag", cfg.Folds)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s, want 90s", cfg.Timeout)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be enabled from env")
	}
	if seed, _, _, _ := cfg.SampleOverrides(); !seed {
		t.Error("seed from env should count as an override")
	}
}

// TestParseConfigInvalid checks validation errors.
func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero grid", []string{"--nx", "0"}, "grid size"},
		{"one fold", []string{"--folds", "1"}, "folds"},
		{"bad test size", []string{"--test-size", "1.5"}, "test-size"},
		{"bad format", []string{"--format", "gif"}, "unsupported format"},
		{"zero jobs", []string{"--jobs", "0"}, "jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("frankestudy", tt.args, &buf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

// TestParseConfigHelp checks that -h surfaces flag.ErrHelp.
func TestParseConfigHelp(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("frankestudy", []string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "Franke") {
		t.Errorf("usage should describe the tool, got: %s", buf.String())
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	for _, v := range []string{"true", "1", "YES"} {
		if !parseBoolEnv(v, false) {
			t.Errorf("parseBoolEnv(%q) should be true", v)
		}
	}
	if parseBoolEnv("maybe", true) != true {
		t.Error("unrecognized values should keep the default")
	}
}

// TestParseConfigOnly checks the scenario selection list.
func TestParseConfigOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("frankestudy", []string{"--only", "MSER2_OLS, Gridsearch,,"}, &buf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	want := []string{"MSER2_OLS", "Gridsearch"}
	if strings.Join(cfg.Only, "|") != strings.Join(want, "|") {
		t.Errorf("Only = %q, want %q", cfg.Only, want)
	}

	t.Setenv("FRANKE_ONLY", "BiasVar")
	cfg, err = ParseConfig("frankestudy", nil, &buf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if len(cfg.Only) != 1 || cfg.Only[0] != "BiasVar" {
		t.Errorf("Only from env = %q, want [BiasVar]", cfg.Only)
	}
}
