// Package logging wraps zerolog for the study runner. Components that log
// per-fit or per-figure events take a zerolog.Logger through SetLogger; the
// application logs run lifecycle events through the Logger interface, which
// has a JSON zerolog adapter and a plain standard-library adapter.
package logging
