// Package config defines the application configuration, its command-line
// flags and the environment variable overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/frankestudy/internal/errors"
)

// EnvPrefix is prepended to every environment variable name read by the
// application (e.g. FRANKE_SEED).
const EnvPrefix = "FRANKE_"

// Defaults for the study. They reproduce the original figure run.
const (
	DefaultOutputDir    = "./Plots"
	DefaultFormat       = "pdf"
	DefaultSeed         = 133
	DefaultGridSize     = 16
	DefaultNoise        = 0.1
	DefaultBootstraps   = 100
	DefaultFolds        = 5
	DefaultTestFraction = 0.2
	DefaultTimeout      = 30 * time.Minute
	DefaultLogLevel     = "warn"
)

// SupportedFormats lists the figure formats the renderer can write.
var SupportedFormats = []string{"pdf", "svg", "eps", "png"}

// AppConfig aggregates the application's configuration parameters,
// as parsed from command-line flags and environment variables.
type AppConfig struct {
	// StudyFile is an optional HCL study definition; empty uses the built-in study.
	StudyFile string
	// OutputDir is the root directory for figures.
	OutputDir string
	// Format is the figure file format.
	Format string
	// Seed seeds the data synthesizer. It is applied exactly once per run.
	Seed uint64
	// Nx and Ny are the grid resolution of the synthetic sample.
	Nx, Ny int
	// Noise is the standard deviation of the Gaussian noise added to the surface.
	Noise float64
	// Bootstraps is the number of bootstrap resamples per degree.
	Bootstraps int
	// Folds is the number of cross-validation folds.
	Folds int
	// TestFraction is the share of points held out as the test set.
	TestFraction float64
	// Jobs bounds the number of grid columns fitted concurrently.
	Jobs int
	// Timeout is the maximum duration of the whole run.
	Timeout time.Duration
	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string
	// LogLevel is the zerolog level name.
	LogLevel string
	// TUI enables the interactive dashboard instead of the spinner.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Yes answers "y" to the generation prompt.
	Yes bool
	// Show answers "y" to the show-figures prompt when Yes is set.
	Show bool
	// Quiet suppresses progress output.
	Quiet bool
	// Only restricts the run to these scenario names or categories.
	Only []string
	// Completion, when set, prints a completion script for that shell and exits.
	Completion string

	seedSet, nxSet, nySet, noiseSet bool
}

// SampleOverrides reports which sample parameters were set explicitly on the
// command line or environment, so they can take priority over a study file.
func (c AppConfig) SampleOverrides() (seed, nx, ny, noise bool) {
	return c.seedSet, c.nxSet, c.nySet, c.noiseSet
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	switch {
	case c.Nx <= 0 || c.Ny <= 0:
		return apperrors.NewConfigError("grid size must be positive, got nx=%d ny=%d", c.Nx, c.Ny)
	case c.Noise < 0:
		return apperrors.NewConfigError("noise must be non-negative, got %g", c.Noise)
	case c.Bootstraps < 1:
		return apperrors.NewConfigError("bootstraps must be at least 1, got %d", c.Bootstraps)
	case c.Folds < 2:
		return apperrors.NewConfigError("folds must be at least 2, got %d", c.Folds)
	case c.TestFraction <= 0 || c.TestFraction >= 1:
		return apperrors.NewConfigError("test-size must be in (0, 1), got %g", c.TestFraction)
	case c.Jobs < 1:
		return apperrors.NewConfigError("jobs must be at least 1, got %d", c.Jobs)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	for _, f := range SupportedFormats {
		if c.Format == f {
			return nil
		}
	}
	return apperrors.NewConfigError("unsupported format %q (supported: %s)", c.Format, strings.Join(SupportedFormats, ", "))
}

// ParseConfig parses the command-line arguments, applies environment
// overrides and validates the result.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments without the program name.
//   - errorWriter: Destination of usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when -h was given, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage of %s:\n", programName)
		fmt.Fprintf(errorWriter, "Fits OLS, Ridge and Lasso polynomial models to a noisy Franke surface\nand writes the diagnostic figures.\n\n")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.StudyFile, "study", "", "HCL study file (default: built-in study).")
	fs.StringVar(&config.OutputDir, "out", DefaultOutputDir, "Root directory for figures.")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Figure format: pdf, svg, eps or png.")
	fs.Uint64Var(&config.Seed, "seed", DefaultSeed, "Seed for the synthetic sample.")
	fs.IntVar(&config.Nx, "nx", DefaultGridSize, "Number of x coordinates.")
	fs.IntVar(&config.Ny, "ny", DefaultGridSize, "Number of y coordinates.")
	fs.Float64Var(&config.Noise, "noise", DefaultNoise, "Standard deviation of the added noise.")
	fs.IntVar(&config.Bootstraps, "bootstraps", DefaultBootstraps, "Bootstrap resamples per degree.")
	fs.IntVar(&config.Folds, "folds", DefaultFolds, "Cross-validation folds.")
	fs.Float64Var(&config.TestFraction, "test-size", DefaultTestFraction, "Fraction of points held out for testing.")
	fs.IntVar(&config.Jobs, "jobs", 1, "Grid columns fitted concurrently.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&config.TUI, "tui", false, "Show the interactive dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Yes, "yes", false, "Generate figures without prompting.")
	fs.BoolVar(&config.Yes, "y", false, "Shorthand for --yes.")
	fs.BoolVar(&config.Show, "show", false, "List the written figures at the end (with --yes).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress progress output.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish) and exit.")
	var only string
	fs.StringVar(&only, "only", "", "Comma-separated scenario names or categories to run.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.Only = splitList(only)
	applyEnvOverrides(&config, fs)

	config.seedSet = isFlagSet(fs, "seed") || envSet("SEED")
	config.nxSet = isFlagSet(fs, "nx") || envSet("NX")
	config.nySet = isFlagSet(fs, "ny") || envSet("NY")
	config.noiseSet = isFlagSet(fs, "noise") || envSet("NOISE")

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// splitList splits a comma-separated list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
