package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/frankestudy/internal/ui"
)

// Dashboard styles, rebuilt from the active ui theme by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	accentStyle     lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	warningStyle    lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	sparklineStyle  lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles. Run calls it again after the theme was
// chosen from the command line.
func initTUIStyles() {
	t := ui.GetCurrentTheme()
	base := lipgloss.NewStyle()

	panelStyle = base.Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Foreground(t.Text)
	headerStyle = base.Bold(true).Foreground(t.Accent).Padding(0, 1)
	titleStyle = base.Bold(true).Foreground(t.Accent)
	dimStyle = base.Foreground(t.Muted)
	accentStyle = base.Foreground(t.Accent)
	successStyle = base.Foreground(t.Success).Bold(true)
	errorStyle = base.Foreground(t.Error).Bold(true)
	warningStyle = base.Foreground(t.Warning).Bold(true)
	labelStyle = base.Foreground(t.Muted)
	valueStyle = base.Foreground(t.Accent).Bold(true)
	sparklineStyle = base.Foreground(t.Info)
	footerKeyStyle = base.Foreground(t.Accent).Bold(true)
	footerDescStyle = base.Foreground(t.Muted)
}
