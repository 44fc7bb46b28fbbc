// Package biquad provides the second-order IIR runtime used by the
// modulated filter.
//
// [Coefficients] hold one normalized transfer function (a0 == 1). [State]
// holds the four Direct Form I taps of one channel and applies any
// Coefficients value sample by sample, so coefficients may change on every
// sample without disturbing the filter memory. [Section] bundles a fixed
// coefficient set with a State for static filtering and analysis.
//
// Coefficient design lives in dsp/filter/design.
package biquad
