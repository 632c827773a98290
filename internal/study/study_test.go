package study

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/fit"
	"github.com/agbru/frankestudy/internal/sweep"
)

func TestDefaultStudy(t *testing.T) {
	t.Parallel()
	st, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 16, st.Sample.Nx)
	assert.Equal(t, 16, st.Sample.Ny)
	assert.Equal(t, 0.1, st.Sample.Noise)
	assert.Equal(t, uint64(133), st.Sample.Seed)

	wantNames := []string{
		"MSER2/MSER2_OLS",
		"Betamatrix/Betavalues_6",
		"BiasVar/biasvar_bootOLS",
		"MSE/bootcross",
		"Gridsearch/Ridge_crossval_grid",
		"Gridsearch/Lasso_crossval_grid",
		"Gridsearch/Ridge_grid",
		"Gridsearch/Lasso_grid",
		"BiasVarLamb/biasvarname",
	}
	require.Len(t, st.Scenarios, len(wantNames))
	for i, sc := range st.Scenarios {
		assert.Equal(t, wantNames[i], sc.Category+"/"+sc.Name)
		assert.NotEmpty(t, sc.Description)
	}

	first := st.Scenarios[0]
	assert.Equal(t, KindDegree, first.Kind)
	assert.Equal(t, PlotMSER2, first.Plot)
	assert.Equal(t, sweep.Configuration{Method: fit.OLS, Resampling: sweep.None, MinDegree: 0, MaxDegree: 11}, first.Base)

	betas := st.Scenarios[1]
	assert.Equal(t, 6, betas.Betas)
	assert.Equal(t, 6, betas.PlotDegrees)
	assert.Equal(t, 1e-4, betas.Base.Lambda)

	panels := st.Scenarios[3]
	assert.Equal(t, []sweep.Resampling{sweep.Bootstrap, sweep.KFold}, panels.Resamplings)
	assert.Equal(t, []string{"Bootstrap", "Cross-validation"}, panels.Titles)

	ridge := st.Scenarios[4]
	assert.Equal(t, KindGrid, ridge.Kind)
	assert.Equal(t, PlotGridsearch, ridge.Plot)
	assert.Equal(t, sweep.MSETest, ridge.Metric)
	assert.Equal(t, "Ridge", ridge.Title)
	require.Len(t, ridge.Lambdas, 7)
	assert.InDelta(t, 1e-6, ridge.Lambdas[0], 1e-18)
	assert.InDelta(t, 1, ridge.Lambdas[6], 1e-12)
	assert.Equal(t, 3, ridge.Base.MinDegree)
	assert.Equal(t, 10, ridge.Base.MaxDegree)

	lasso := st.Scenarios[5]
	require.Len(t, lasso.Lambdas, 5)
	assert.InDelta(t, 1e-3, lasso.Lambdas[4], 1e-15)
	assert.Equal(t, 20, lasso.Base.MaxDegree)

	cmp := st.Scenarios[8]
	assert.Equal(t, PlotBiasVarianceLambdas, cmp.Plot)
	assert.Equal(t, []fit.Method{fit.Ridge, fit.Lasso}, cmp.Methods)
	assert.Equal(t, []float64{1e-5, 1e-1, 50}, cmp.Lambdas)
	assert.Equal(t, sweep.Bootstrap, cmp.Base.Resampling)
}

func TestParseSampleDefaults(t *testing.T) {
	t.Parallel()
	src := `
scenario "s" {
  kind       = "degree"
  category   = "C"
  max_degree = 2
}
`
	st, err := Parse([]byte(src), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultNx, st.Sample.Nx)
	assert.Equal(t, uint64(DefaultSeed), st.Sample.Seed)
	assert.Equal(t, PlotMSER2, st.Scenarios[0].Plot)
}

func TestParseSampleZeroNoise(t *testing.T) {
	t.Parallel()
	src := `
sample {
  noise = 0
  seed  = 0
}
scenario "s" {
  kind       = "degree"
  category   = "C"
  max_degree = 2
}
`
	st, err := Parse([]byte(src), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.Sample.Noise)
	assert.Equal(t, uint64(0), st.Sample.Seed)
}

func TestParseFunctions(t *testing.T) {
	t.Parallel()
	src := `
scenario "g" {
  kind       = "grid"
  category   = "C"
  lambdas    = linspace(0, 1, 5)
  max_degree = 2
}
`
	st, err := Parse([]byte(src), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, st.Scenarios[0].Lambdas)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		src        string
		validation bool
	}{
		{"Syntax", `scenario "x" {`, false},
		{"MissingMaxDegree", `scenario "x" { 
  kind = "degree"
  category = "C"
}`, false},
		{"UnknownKind", `scenario "x" {
  kind = "surface"
  category = "C"
  max_degree = 1
}`, true},
		{"PlotNotForKind", `scenario "x" {
  kind = "grid"
  plot = "betas"
  category = "C"
  lambdas = [1]
  max_degree = 1
}`, true},
		{"UnknownMethod", `scenario "x" {
  kind = "degree"
  method = "elasticnet"
  category = "C"
  max_degree = 1
}`, true},
		{"PanelTitleMismatch", `scenario "x" {
  kind = "panels"
  resamplings = ["none", "kfold"]
  titles = ["only one"]
  category = "C"
  max_degree = 1
}`, true},
		{"GridWithoutLambdas", `scenario "x" {
  kind = "grid"
  category = "C"
  max_degree = 1
}`, true},
		{"NegativeDegree", `scenario "x" {
  kind = "degree"
  category = "C"
  min_degree = -1
  max_degree = 1
}`, true},
		{"DuplicateFigure", `scenario "x" {
  kind = "degree"
  category = "C"
  max_degree = 1
}
scenario "x" {
  kind = "degree"
  category = "C"
  max_degree = 2
}`, true},
		{"NoScenarios", `sample {
  nx = 4
}`, true},
		{"InvalidSample", `sample {
  nx = 0
}
scenario "x" {
  kind = "degree"
  category = "C"
  max_degree = 1
}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "inline.hcl")
			require.Error(t, err)
			var verr apperrors.ValidationError
			var cerr apperrors.ConfigError
			if tt.validation {
				assert.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			} else {
				assert.True(t, errors.As(err, &cerr), "want ConfigError, got %v", err)
			}
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCode(err))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "study.hcl")
	require.NoError(t, os.WriteFile(path, defaultStudy, 0o644))
	st, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, st.Scenarios, 9)

	_, err = Load(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestSpaceFunctions(t *testing.T) {
	t.Parallel()
	src := `
scenario "g" {
  kind       = "grid"
  category   = "C"
  lambdas    = logspace(0, 2, 3)
  max_degree = 1
}
scenario "h" {
  kind       = "grid"
  category   = "C"
  lambdas    = linspace(3, 3, 1)
  max_degree = 1
}
`
	st, err := Parse([]byte(src), "inline.hcl")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 10, 100}, st.Scenarios[0].Lambdas, 1e-12)
	assert.Equal(t, []float64{3}, st.Scenarios[1].Lambdas)

	_, err = Parse([]byte(`
scenario "g" {
  kind       = "grid"
  category   = "C"
  lambdas    = logspace(0, 2, -1)
  max_degree = 1
}`), "inline.hcl")
	assert.Error(t, err)
}
