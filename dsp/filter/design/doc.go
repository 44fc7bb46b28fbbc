// Package design provides the biquad coefficient designers used by the
// modulated filter.
//
// [Solve] maps a [FilterType], cutoff, quality factor and sample rate to
// normalized coefficients consumable by dsp/filter/biquad. The RBJ forms
// (Lowpass24 through Allpass24) use alpha = sin(w0)/(2Q); the 12 dB forms use
// the tangent-prewarped bilinear prototype with k = tan(w0/2).
//
// [Solver] wraps Solve for per-sample use and skips re-solving while its
// inputs stay within a configurable cutoff tolerance.
package design
