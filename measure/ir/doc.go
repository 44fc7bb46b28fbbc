// Package ir analyzes impulse responses captured from the filter engine.
//
// It reports the peak, the energy decay derived from the Schroeder backward
// integral, and the magnitude response obtained with an FFT:
//
//   - DecayTime: -60 dB time extrapolated from the -5 to -25 dB slope
//   - TailLength: time until the remaining energy falls below a floor
//   - Response: magnitude and phase per FFT bin
//   - CutoffHz: first frequency where the response drops 3 dB below its peak
//
// # Usage
//
//	analyzer := ir.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("decay = %.3f s, -3 dB at %.0f Hz\n", metrics.DecayTime, metrics.CutoffHz)
package ir
