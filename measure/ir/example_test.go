package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/biquad"
	"github.com/cwbudde/algo-lfofilter/dsp/filter/design"
	"github.com/cwbudde/algo-lfofilter/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	const sampleRate = 48000.0

	coeffs := design.Solve(design.Lowpass24, 1000, 1/math.Sqrt2, sampleRate)
	irData := biquad.NewSection(coeffs).ImpulseResponse(2048)

	metrics, err := ir.NewAnalyzer(sampleRate).Analyze(irData)
	if err != nil {
		panic(err)
	}

	fmt.Printf("peak at sample %d\n", metrics.PeakIndex)
	fmt.Printf("-3 dB near 1 kHz: %t\n", math.Abs(metrics.CutoffHz-1000) < 15)

	// Output:
	// peak at sample 9
	// -3 dB near 1 kHz: true
}

func ExampleCutoffHz() {
	resp := []ir.Bin{
		{FreqHz: 0, MagnitudeDB: 0},
		{FreqHz: 100, MagnitudeDB: -2},
		{FreqHz: 200, MagnitudeDB: -4},
	}
	fmt.Printf("%.0f Hz\n", ir.CutoffHz(resp))
	// Output: 150 Hz
}
