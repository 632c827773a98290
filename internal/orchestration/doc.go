// Package orchestration runs the scenarios of a study in order and collects
// their outcomes. It decouples execution from presentation through the
// ProgressReporter and ResultPresenter interfaces, and wraps every scenario
// in an OpenTelemetry span.
package orchestration
