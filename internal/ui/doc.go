// Package ui holds the colour themes shared by the CLI and the TUI
// dashboard. The default theme reuses the palette of the figures so the
// terminal output matches the plots.
package ui
