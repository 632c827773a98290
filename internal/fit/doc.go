// Package fit implements the polynomial surface models of the study:
// the two-dimensional polynomial design matrix, ordinary least squares,
// ridge and lasso regression, and the MSE and R² scores.
//
// All three methods leave the intercept unpenalized. Slope features are
// centered on their training means before solving, and the intercept is
// recovered afterwards, so a Model's coefficients line up one-to-one with
// the columns produced by Design.
package fit
