// Package study defines the ordered list of experiments a run performs.
//
// A study is written in HCL: one optional sample block describing the data
// set and any number of scenario blocks, executed in file order. Numeric
// lists may use the logspace(start, stop, n) and linspace(start, stop, n)
// functions. The study reproducing the full Franke figure set is embedded
// and returned by Default.
package study
