// Package solver is the concrete sweep.Solver of the study. For every degree
// of a configuration it builds the polynomial design matrix, fits the model
// on a fixed training split with the requested resampling scheme, and scores
// the fits on the held-out test split, including the bias-variance
// decomposition of the test error.
package solver
