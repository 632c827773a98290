// Package sweep drives the regression experiments of a study.
//
// It knows nothing about how a model is fitted. Every experiment is
// expressed as calls to a Solver: a degree sweep is one call, a grid search
// is one degree sweep per value of a varied parameter, and a comparison is
// one degree sweep per (λ, method) pair. The package enforces the shape
// invariants of the results it hands back: records ordered by degree, one
// record per degree, and grids filled exactly once per cell.
package sweep
