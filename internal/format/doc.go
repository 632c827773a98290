// Package format holds the display helpers shared by the CLI and the TUI:
// durations, progress bars and time-remaining estimates.
package format
