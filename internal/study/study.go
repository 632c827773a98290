package study

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/fit"
	"github.com/agbru/frankestudy/internal/franke"
	"github.com/agbru/frankestudy/internal/sweep"
)

//go:embed default.hcl
var defaultStudy []byte

// DefaultFilename is the name reported in diagnostics for the embedded study.
const DefaultFilename = "default.hcl"

// Default sample settings.
const (
	DefaultNx    = 16
	DefaultNy    = 16
	DefaultNoise = 0.1
	DefaultSeed  = 133
)

// Kind selects how a scenario drives the sweep.
type Kind string

const (
	// KindDegree runs one degree sweep.
	KindDegree Kind = "degree"
	// KindPanels runs one degree sweep per resampling scheme.
	KindPanels Kind = "panels"
	// KindGrid runs a λ × degree grid search.
	KindGrid Kind = "grid"
	// KindComparison runs one degree sweep per (λ, method) pair.
	KindComparison Kind = "comparison"
)

// Plot selects the figure a scenario renders.
type Plot string

const (
	PlotMSER2               Plot = "mse_r2"
	PlotBetas               Plot = "betas"
	PlotBiasVariance        Plot = "bias_variance"
	PlotMSE                 Plot = "mse"
	PlotGridsearch          Plot = "gridsearch"
	PlotBiasVarianceLambdas Plot = "bias_variance_lambdas"
)

// plotsByKind lists the figures each kind can produce; the first is the default.
var plotsByKind = map[Kind][]Plot{
	KindDegree:     {PlotMSER2, PlotBetas, PlotBiasVariance},
	KindPanels:     {PlotMSE},
	KindGrid:       {PlotGridsearch},
	KindComparison: {PlotBiasVarianceLambdas},
}

// Scenario is one experiment and the figure it produces.
type Scenario struct {
	// Name is the file name of the figure, without extension.
	Name string
	// Description is announced before the scenario runs.
	Description string
	// Category is the sub-directory of the output root.
	Category string
	// Title is the figure title, if any.
	Title string
	Kind  Kind
	Plot  Plot
	// Base is the sweep configuration. Panels override its resampling,
	// grids and comparisons its λ, comparisons its method.
	Base sweep.Configuration

	Resamplings []sweep.Resampling // panels
	Titles      []string           // panels
	Lambdas     []float64          // grid, comparison
	Methods     []fit.Method       // comparison
	Metric      sweep.Metric       // grid

	// Betas is the number of coefficients plotted by PlotBetas, and
	// PlotDegrees the number of leading degrees kept.
	Betas       int
	PlotDegrees int
}

// Study is a sample definition and the scenarios to run against it.
type Study struct {
	Sample    franke.Options
	Scenarios []Scenario
}

type fileSchema struct {
	Sample    *sampleBlock     `hcl:"sample,block"`
	Scenarios []*scenarioBlock `hcl:"scenario,block"`
}

type sampleBlock struct {
	Nx    *int     `hcl:"nx,optional"`
	Ny    *int     `hcl:"ny,optional"`
	Noise *float64 `hcl:"noise,optional"`
	Seed  *uint64  `hcl:"seed,optional"`
}

type scenarioBlock struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Kind        string    `hcl:"kind"`
	Plot        string    `hcl:"plot,optional"`
	Category    string    `hcl:"category"`
	Title       string    `hcl:"title,optional"`
	Method      string    `hcl:"method,optional"`
	Methods     []string  `hcl:"methods,optional"`
	Lambda      float64   `hcl:"lambda,optional"`
	Lambdas     []float64 `hcl:"lambdas,optional"`
	Resampling  string    `hcl:"resampling,optional"`
	Resamplings []string  `hcl:"resamplings,optional"`
	Titles      []string  `hcl:"titles,optional"`
	Metric      string    `hcl:"metric,optional"`
	MinDegree   int       `hcl:"min_degree,optional"`
	MaxDegree   int       `hcl:"max_degree"`
	Betas       int       `hcl:"betas,optional"`
	PlotDegrees int       `hcl:"plot_degrees,optional"`
}

// Default returns the embedded study that reproduces the complete figure set.
func Default() (*Study, error) {
	return Parse(defaultStudy, DefaultFilename)
}

// Load reads and parses a study file.
func Load(path string) (*Study, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("reading study file: %v", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source into a validated Study.
func Parse(src []byte, filename string) (*Study, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, apperrors.NewConfigError("parsing %s: %s", filename, diags.Error())
	}
	var root fileSchema
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, apperrors.NewConfigError("decoding %s: %s", filename, diags.Error())
	}

	st := &Study{Sample: sampleOptions(root.Sample)}
	if err := st.Sample.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, b := range root.Scenarios {
		sc, err := b.scenario()
		if err != nil {
			return nil, apperrors.WrapError(err, "scenario %q", b.Name)
		}
		key := sc.Category + "/" + sc.Name
		if seen[key] {
			return nil, apperrors.ValidationError{Field: "scenario", Message: fmt.Sprintf("duplicate figure %s", key)}
		}
		seen[key] = true
		st.Scenarios = append(st.Scenarios, sc)
	}
	if len(st.Scenarios) == 0 {
		return nil, apperrors.ValidationError{Field: "scenario", Message: "study has no scenarios"}
	}
	return st, nil
}

func sampleOptions(b *sampleBlock) franke.Options {
	opts := franke.Options{Nx: DefaultNx, Ny: DefaultNy, Noise: DefaultNoise, Seed: DefaultSeed}
	if b == nil {
		return opts
	}
	if b.Nx != nil {
		opts.Nx = *b.Nx
	}
	if b.Ny != nil {
		opts.Ny = *b.Ny
	}
	if b.Noise != nil {
		opts.Noise = *b.Noise
	}
	if b.Seed != nil {
		opts.Seed = *b.Seed
	}
	return opts
}

func (b *scenarioBlock) scenario() (Scenario, error) {
	sc := Scenario{
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Title:       b.Title,
		Kind:        Kind(strings.ToLower(b.Kind)),
		Titles:      b.Titles,
		Lambdas:     b.Lambdas,
		Betas:       b.Betas,
		PlotDegrees: b.PlotDegrees,
		Base:        sweep.Configuration{Lambda: b.Lambda, MinDegree: b.MinDegree, MaxDegree: b.MaxDegree},
	}
	if strings.TrimSpace(sc.Name) == "" || strings.ContainsAny(sc.Name, `/\`) {
		return sc, apperrors.ValidationError{Field: "name", Message: fmt.Sprintf("invalid figure name %q", sc.Name)}
	}
	if strings.TrimSpace(sc.Category) == "" {
		return sc, apperrors.ValidationError{Field: "category", Message: "must not be empty"}
	}

	plots, ok := plotsByKind[sc.Kind]
	if !ok {
		return sc, apperrors.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", b.Kind)}
	}
	sc.Plot = plots[0]
	if b.Plot != "" {
		sc.Plot = Plot(strings.ToLower(b.Plot))
		if !containsPlot(plots, sc.Plot) {
			return sc, apperrors.ValidationError{Field: "plot", Message: fmt.Sprintf("plot %q is not available for kind %q", b.Plot, sc.Kind)}
		}
	}

	var err error
	if b.Method != "" {
		if sc.Base.Method, err = fit.ParseMethod(b.Method); err != nil {
			return sc, err
		}
	}
	if b.Resampling != "" {
		if sc.Base.Resampling, err = sweep.ParseResampling(b.Resampling); err != nil {
			return sc, err
		}
	}
	if b.Metric != "" {
		if sc.Metric, err = sweep.ParseMetric(b.Metric); err != nil {
			return sc, err
		}
	}
	for _, name := range b.Methods {
		m, err := fit.ParseMethod(name)
		if err != nil {
			return sc, err
		}
		sc.Methods = append(sc.Methods, m)
	}
	for _, name := range b.Resamplings {
		r, err := sweep.ParseResampling(name)
		if err != nil {
			return sc, err
		}
		sc.Resamplings = append(sc.Resamplings, r)
	}
	if err := sc.Base.Validate(); err != nil {
		return sc, err
	}
	return sc, sc.validateKind()
}

func (sc Scenario) validateKind() error {
	switch sc.Kind {
	case KindPanels:
		if len(sc.Resamplings) == 0 {
			return apperrors.ValidationError{Field: "resamplings", Message: "panels need at least one resampling"}
		}
		if len(sc.Titles) != len(sc.Resamplings) {
			return apperrors.ValidationError{Field: "titles", Message: fmt.Sprintf("%d titles for %d panels", len(sc.Titles), len(sc.Resamplings))}
		}
	case KindGrid, KindComparison:
		if len(sc.Lambdas) == 0 {
			return apperrors.ValidationError{Field: "lambdas", Message: "must not be empty"}
		}
		for _, l := range sc.Lambdas {
			if l < 0 {
				return apperrors.ValidationError{Field: "lambdas", Message: fmt.Sprintf("must be non-negative, got %g", l)}
			}
		}
		if sc.Kind == KindComparison && len(sc.Methods) == 0 {
			return apperrors.ValidationError{Field: "methods", Message: "must not be empty"}
		}
	case KindDegree:
		if sc.Plot == PlotBetas && sc.Betas <= 0 {
			return apperrors.ValidationError{Field: "betas", Message: fmt.Sprintf("must be positive, got %d", sc.Betas)}
		}
	}
	return nil
}

func containsPlot(plots []Plot, p Plot) bool {
	for _, q := range plots {
		if q == p {
			return true
		}
	}
	return false
}
