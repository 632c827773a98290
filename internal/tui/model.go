package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/format"
	"github.com/agbru/frankestudy/internal/metrics"
	"github.com/agbru/frankestudy/internal/orchestration"
	"github.com/agbru/frankestudy/internal/study"
	"github.com/agbru/frankestudy/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	progressHeight        = 1
	footerHeight          = 1
	minBodyHeight         = 6
	ScenarioPanelPercent  = 60
	metricsSampleInterval = 500 * time.Millisecond
)

// FitCounter reports the number of fits performed so far.
type FitCounter interface {
	Fits() int64
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header    HeaderModel
	scenarios ScenariosModel
	metrics   MetricsModel
	bar       progress.Model
	help      help.Model
	keymap    KeyMap

	ctx    context.Context
	cancel context.CancelFunc
	study  *study.Study
	env    orchestration.Environment
	fits   FitCounter
	ref    *programRef

	width, height int
	percent       float64
	eta           time.Duration
	paused        bool
	done          bool
	firstErr      error
	exitCode      int
	results       []orchestration.ScenarioResult
}

// NewModel creates the dashboard for st. fits may be nil.
func NewModel(parent context.Context, st *study.Study, env orchestration.Environment, fits FitCounter) Model {
	ctx, cancel := context.WithCancel(parent)
	sample := fmt.Sprintf("%d×%d grid, σ=%g, seed %d", st.Sample.Nx, st.Sample.Ny, st.Sample.Noise, st.Sample.Seed)
	return Model{
		header:    NewHeaderModel(sample),
		scenarios: NewScenariosModel(st.Scenarios),
		metrics:   NewMetricsModel(),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		ctx:       ctx,
		cancel:    cancel,
		study:     st,
		env:       env,
		fits:      fits,
		ref:       &programRef{},
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init starts the study, the metrics ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.scenarios.spinner.Tick,
		startStudyCmd(m.ctx, m.ref, m.study, m.env),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		switch msg.Update.Stage {
		case orchestration.StageStarted:
			m.scenarios.Start(msg.Update.Index)
		case orchestration.StageFinished:
			m.scenarios.Finish(msg.Update.Index, msg.Update.Duration, msg.Update.Figure, msg.Update.Err)
		}
		m.percent, m.eta = msg.Progress, msg.ETA
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case SummaryMsg:
		m.results = msg.Results
		return m, nil

	case ErrorMsg:
		if m.firstErr == nil {
			m.firstErr = msg.Err
		}
		return m, nil

	case StudyCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.results = msg.Results
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(m.ctx, m.fits), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.scenarios.spinner, cmd = m.scenarios.spinner.Update(msg)
		return m, cmd

	case ContextCancelledMsg:
		if m.done {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.ExitCode(msg.Err)
		m.header.SetDone()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
			m.done = true
		}
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keymap.Up):
		m.scenarios.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.scenarios.Scroll(1)
	case key.Matches(msg, m.keymap.Top):
		m.scenarios.ScrollTo(false)
	case key.Matches(msg, m.keymap.Bottom):
		m.scenarios.ScrollTo(true)
	}
	return m, nil
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-progressHeight-footerHeight, minBodyHeight)
}

func (m *Model) layoutPanels() {
	left := m.width * ScenarioPanelPercent / 100
	m.header.SetWidth(m.width)
	m.scenarios.SetSize(left, m.bodyHeight())
	m.metrics.SetSize(m.width-left, m.bodyHeight())
	m.bar.Width = max(m.width-30, 10)
	m.help.Width = m.width
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.scenarios.View(), m.metrics.View())
	bar := " " + m.bar.ViewAs(m.percent) + " " +
		valueStyle.Render(fmt.Sprintf("%5.1f%%", m.percent*100)) + " " +
		dimStyle.Render("ETA "+format.FormatETA(m.eta))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, bar, m.footerView())
}

func (m Model) footerView() string {
	done, failed := m.scenarios.Counts()
	var status string
	switch {
	case m.done && failed > 0:
		status = errorStyle.Render(fmt.Sprintf("DONE %d/%d, %d failed", done, len(m.scenarios.rows), failed))
	case m.done:
		status = successStyle.Render(fmt.Sprintf("DONE %d/%d", done, len(m.scenarios.rows)))
	case m.paused:
		status = warningStyle.Render("PAUSED")
	default:
		status = accentStyle.Render(fmt.Sprintf("RUNNING %d/%d", done, len(m.scenarios.rows)))
	}
	return " " + status + "  " + m.help.ShortHelpView(m.keymap.ShortHelp())
}

// ExitCode returns the code the run finished with.
func (m Model) ExitCode() int { return m.exitCode }

// Results returns the scenario results once the study completed.
func (m Model) Results() []orchestration.ScenarioResult { return m.results }

// Run shows the dashboard while st runs and returns the exit code and the
// results. The dashboard stays open after completion until the user quits.
func Run(ctx context.Context, st *study.Study, env orchestration.Environment, fits FitCounter) (int, []orchestration.ScenarioResult) {
	initTUIStyles()
	model := NewModel(ctx, st, env, fits)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	final, err := p.Run()
	m, ok := final.(Model)
	switch {
	case !ok:
		return apperrors.ExitErrorGeneric, nil
	case !m.done && ctx.Err() != nil:
		return apperrors.ExitCode(ctx.Err()), m.Results()
	case !m.done && err != nil:
		return apperrors.ExitErrorGeneric, m.Results()
	}
	return m.ExitCode(), m.Results()
}

// startStudyCmd runs the study in the command goroutine.
func startStudyCmd(ctx context.Context, ref *programRef, st *study.Study, env orchestration.Environment) tea.Cmd {
	return func() tea.Msg {
		results := orchestration.ExecuteStudy(ctx, st, env, &TUIProgressReporter{ref: ref}, io.Discard)
		code := orchestration.Summarize(results, &TUIResultPresenter{ref: ref}, io.Discard)
		return StudyCompleteMsg{ExitCode: code, Results: results}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(metricsSampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(ctx context.Context, fits FitCounter) tea.Cmd {
	return func() tea.Msg {
		msg := MemStatsMsg{
			MemorySnapshot: metrics.ReadMemory(),
			System:         sysmon.Sample(ctx),
			Goroutines:     runtime.NumGoroutine(),
		}
		if fits != nil {
			msg.Fits = fits.Fits()
		}
		return msg
	}
}

func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
