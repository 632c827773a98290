// Package franke synthesizes the test data of the study: the Franke surface
// sampled on a seeded random grid with additive Gaussian noise.
//
// A Sample is generated once per run and never modified afterward. All
// randomness comes from a single generator seeded from Options.Seed, so the
// same options always produce the same sample.
package franke
