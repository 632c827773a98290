package orchestration

import (
	"testing"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

func TestSelectScenarios(t *testing.T) {
	t.Parallel()
	st := defaultStudy(t)

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"empty keeps all", nil, []string{"MSER2_OLS", "Betavalues_6", "biasvar_bootOLS", "bootcross", "Ridge_crossval_grid", "Lasso_crossval_grid", "Ridge_grid", "Lasso_grid", "biasvarname"}},
		{"by name", []string{"bootcross"}, []string{"bootcross"}},
		{"case insensitive", []string{"mser2_ols"}, []string{"MSER2_OLS"}},
		{"by category keeps study order", []string{"Gridsearch", "MSER2"}, []string{"MSER2_OLS", "Ridge_crossval_grid", "Lasso_crossval_grid", "Ridge_grid", "Lasso_grid"}},
		{"duplicates collapse", []string{"BiasVar", "biasvar_bootOLS"}, []string{"biasvar_bootOLS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SelectScenarios(st, tt.names)
			if err != nil {
				t.Fatalf("SelectScenarios() error = %v", err)
			}
			if len(got.Scenarios) != len(tt.want) {
				t.Fatalf("selected %d scenarios, want %d", len(got.Scenarios), len(tt.want))
			}
			for i, sc := range got.Scenarios {
				if sc.Name != tt.want[i] {
					t.Errorf("scenario %d = %s, want %s", i, sc.Name, tt.want[i])
				}
			}
			if got.Sample != st.Sample {
				t.Error("selection must keep the sample options")
			}
		})
	}
}

func TestSelectScenariosUnknown(t *testing.T) {
	t.Parallel()
	_, err := SelectScenarios(defaultStudy(t), []string{"MSE", "nope"})
	if err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
	if code := apperrors.ExitCode(err); code != apperrors.ExitErrorConfig {
		t.Errorf("ExitCode() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}
