// Package metrics records run statistics in a private Prometheus registry:
// model fits by method and resampling, fit durations, scenario outcomes and
// written figures, plus the Go runtime collector. The registry can be dumped
// in the node-exporter textfile format at the end of a run.
package metrics
