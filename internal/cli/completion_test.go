package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	scenarios := []string{"MSER2_OLS", "bootcross"}
	tests := []struct {
		shell string
		wants []string
	}{
		{"bash", []string{"complete -F _frankestudy_completions frankestudy", `scenarios="MSER2_OLS bootcross"`, "--only)", `compgen -W "pdf svg eps png"`, "--yes -y"}},
		{"zsh", []string{"#compdef frankestudy", "scenarios=(MSER2_OLS bootcross)", "'--only[Scenarios or categories to run]:scenarios:($scenarios)'", "{-q,--quiet}"}},
		{"fish", []string{"complete -c frankestudy -l only", "-xa 'MSER2_OLS bootcross'", "complete -c frankestudy -l study -d 'HCL study file' -rF", "-s y -l yes"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			if err := GenerateCompletion(&out, tt.shell, "frankestudy", scenarios); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			for _, want := range tt.wants {
				if !strings.Contains(out.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupported(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := GenerateCompletion(&out, "powershell", "frankestudy", nil); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistryMatchesConfig(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Long == "" {
			t.Errorf("flag %+v has no long name", f)
		}
		if seen[f.Long] {
			t.Errorf("flag --%s registered twice", f.Long)
		}
		seen[f.Long] = true
	}
}
