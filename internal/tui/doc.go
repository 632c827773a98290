// Package tui implements the --tui dashboard: a bubbletea program showing
// the scenario list, overall progress, and live runtime metrics while the
// study runs.
package tui
