// Package app wires the configuration, the study pipeline and the CLI or TUI
// front end into the frankestudy command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/frankestudy/internal/cli"
	"github.com/agbru/frankestudy/internal/config"
	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/logging"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/study"
	"github.com/agbru/frankestudy/internal/ui"
)

// ProgramName is used in usage output and completion scripts when args is
// empty.
const ProgramName = "frankestudy"

// Application represents the frankestudy application instance.
type Application struct {
	Config config.AppConfig
	// Study is the study to run, after overrides and scenario selection.
	Study *study.Study
	// In supplies the answers to the interactive prompts.
	In        io.Reader
	ErrWriter io.Writer
	// Logger receives the run lifecycle events. Nil logs JSON to ErrWriter,
	// or nowhere while the dashboard owns the terminal.
	Logger logging.Logger

	programName string
	// scenarioNames lists every scenario of the study file, before --only.
	scenarioNames []string
	// stdout is used to size the closing rule; nil means 80 columns.
	stdout *os.File
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader the prompts are answered from.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithLogger sets the logger for run lifecycle events.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithTerminal sets the file whose terminal width sizes the closing rule.
func WithTerminal(f *os.File) AppOption {
	return func(a *Application) { a.stdout = f }
}

// New creates a new Application by parsing command-line arguments and
// loading the study they select.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin, programName: ProgramName}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	st, err := loadStudy(cfg)
	if err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return nil, err
	}
	for _, sc := range st.Scenarios {
		app.scenarioNames = append(app.scenarioNames, sc.Name)
	}
	if cfg.Completion != "" {
		app.Study = st
		return app, nil
	}

	if app.Study, err = orchestration.SelectScenarios(st, cfg.Only); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return nil, err
	}
	return app, nil
}

// loadStudy reads the study file, or the built-in study, and applies the
// sample parameters given explicitly on the command line or environment.
func loadStudy(cfg config.AppConfig) (*study.Study, error) {
	var (
		st  *study.Study
		err error
	)
	if cfg.StudyFile != "" {
		st, err = study.Load(cfg.StudyFile)
	} else {
		st, err = study.Default()
	}
	if err != nil {
		return nil, err
	}

	seed, nx, ny, noise := cfg.SampleOverrides()
	if seed {
		st.Sample.Seed = cfg.Seed
	}
	if nx {
		st.Sample.Nx = cfg.Nx
	}
	if ny {
		st.Sample.Ny = cfg.Ny
	}
	if noise {
		st.Sample.Noise = cfg.Noise
	}
	return st, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	answers, err := a.askAnswers(out)
	if err != nil {
		var inputErr apperrors.InputError
		if errors.As(err, &inputErr) {
			fmt.Fprintln(a.ErrWriter, inputErr.Message)
		} else {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
		return apperrors.ExitCode(err)
	}
	if !answers.Generate {
		return apperrors.ExitSuccess
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return a.runStudy(ctx, out, answers.Show)
}

// askAnswers returns the prompt answers, or the flag values with --yes.
func (a *Application) askAnswers(out io.Writer) (cli.Answers, error) {
	if a.Config.Yes {
		return cli.Answers{Generate: true, Show: a.Config.Show}, nil
	}
	return cli.AskAnswers(a.In, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.programName, a.scenarioNames); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// terminalWidth is the width of the closing rule.
func (a *Application) terminalWidth() int {
	if a.stdout == nil {
		return cli.DefaultTerminalWidth
	}
	return cli.TerminalWidth(a.stdout)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
