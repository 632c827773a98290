package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of terminal colours.
type Theme struct {
	Name string
	// Accent highlights titles and the active scenario.
	Accent  lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Muted   lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DeepTheme uses the "deep" figure palette on a dark terminal.
	DeepTheme = Theme{
		Name:    "deep",
		Accent:  lipgloss.Color("#4C72B0"),
		Text:    lipgloss.Color("#EAEAF2"),
		Muted:   lipgloss.Color("#8C8C8C"),
		Border:  lipgloss.Color("#4C72B0"),
		Success: lipgloss.Color("#55A868"),
		Warning: lipgloss.Color("#DD8452"),
		Error:   lipgloss.Color("#C44E52"),
		Info:    lipgloss.Color("#8172B3"),
	}

	// LightTheme darkens the palette for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Accent:  lipgloss.Color("#2F4F80"),
		Text:    lipgloss.Color("#1E1E1E"),
		Muted:   lipgloss.Color("#5A5A5A"),
		Border:  lipgloss.Color("#2F4F80"),
		Success: lipgloss.Color("#2E6B3C"),
		Warning: lipgloss.Color("#A0522D"),
		Error:   lipgloss.Color("#8B2E31"),
		Info:    lipgloss.Color("#4B3F80"),
	}

	// NoColorTheme renders everything with the terminal defaults. Used when
	// NO_COLOR is set or --no-color is given.
	NoColorTheme = Theme{
		Name:    "none",
		Accent:  lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}

	themes = map[string]Theme{
		DeepTheme.Name:    DeepTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DeepTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name: "deep", "light" or "none".
func SetTheme(name string) error {
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("ui: unknown theme %q", name)
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme selects the theme at startup. Colours are disabled when noColor
// is set or the NO_COLOR environment variable exists (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DeepTheme)
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Rule    lipgloss.Style
}

// NewStyles builds the styles of t.
func NewStyles(t Theme) Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:   base.Foreground(t.Accent).Bold(true),
		Label:   base.Foreground(t.Muted),
		Value:   base.Foreground(t.Text),
		Muted:   base.Foreground(t.Muted),
		Success: base.Foreground(t.Success).Bold(true),
		Warning: base.Foreground(t.Warning),
		Error:   base.Foreground(t.Error).Bold(true),
		Info:    base.Foreground(t.Info),
		Rule:    base.Foreground(t.Border),
	}
}

// CurrentStyles returns the styles of the active theme.
func CurrentStyles() Styles {
	return NewStyles(GetCurrentTheme())
}
