package ir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("ir: fft size must be >= 2")
	ErrNoDecay           = errors.New("ir: insufficient decay for decay-time estimate")
)

const (
	defaultTailFloorDB = -60.0
	schroederFloorDB   = -200.0
	cutoffDropDB       = -3.0
)

// Metrics holds impulse response analysis results.
type Metrics struct {
	PeakIndex  int     // sample index of the absolute maximum
	PeakValue  float64 // signed sample value at PeakIndex
	Energy     float64 // sum of squared samples
	DecayTime  float64 // -60 dB time in seconds, 0 if the IR does not decay far enough
	TailLength float64 // seconds until the remaining energy is below -60 dB
	CutoffHz   float64 // first -3 dB point above the response peak, 0 if none
}

// Bin is one point of a frequency response.
type Bin struct {
	FreqHz      float64
	MagnitudeDB float64
	Phase       float64
}

// Analyzer computes IR metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics. The frequency response is evaluated with an
// FFT of the next power of two at or above len(ir).
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peakIdx := findPeak(ir)
	schroeder, energy := schroederIntegral(ir)

	m := Metrics{
		PeakIndex:  peakIdx,
		PeakValue:  ir[peakIdx],
		Energy:     energy,
		DecayTime:  a.decayTime(schroeder, -5, -25),
		TailLength: a.tailLength(schroeder, defaultTailFloorDB),
	}

	resp, err := a.Response(ir, nextPow2(len(ir)))
	if err != nil {
		return Metrics{}, err
	}

	m.CutoffHz = CutoffHz(resp)

	return m, nil
}

// Response returns the magnitude and phase of ir for the non-negative FFT
// bins. ir is zero-padded or truncated to fftSize.
func (a *Analyzer) Response(ir []float64, fftSize int) ([]Bin, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	if fftSize < 2 {
		return nil, ErrInvalidFFTSize
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("ir: failed to create FFT plan: %w", err)
	}

	seq := make([]complex128, fftSize)
	for i, v := range ir[:min(len(ir), fftSize)] {
		seq[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, seq); err != nil {
		return nil, fmt.Errorf("ir: forward FFT failed: %w", err)
	}

	out := make([]Bin, fftSize/2+1)
	for i, c := range freq[:len(out)] {
		mag := cmplx.Abs(c)
		out[i] = Bin{
			FreqHz:      float64(i) * a.SampleRate / float64(fftSize),
			MagnitudeDB: core.LinearToDB(mag),
			Phase:       cmplx.Phase(c),
		}
	}

	return out, nil
}

// SchroederIntegral computes the Schroeder backward integration of the
// squared impulse response, returned in dB.
//
// S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	s, _ := schroederIntegral(ir)

	return s, nil
}

// DecayTime extrapolates the -60 dB decay time from the -5 to -25 dB slope
// of the Schroeder curve.
func (a *Analyzer) DecayTime(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	s, _ := schroederIntegral(ir)

	rt := a.decayTime(s, -5, -25)
	if rt <= 0 {
		return 0, ErrNoDecay
	}

	return rt, nil
}

// TailLength returns the time in seconds after which less than floorDB of
// the total energy remains. If the IR never gets there, the full length is
// returned.
func (a *Analyzer) TailLength(ir []float64, floorDB float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	s, _ := schroederIntegral(ir)

	return a.tailLength(s, floorDB), nil
}

// CutoffHz returns the first frequency above the response peak where the
// magnitude falls 3 dB below the peak, linearly interpolated between bins.
// It returns 0 when the response never drops that far.
func CutoffHz(resp []Bin) float64 {
	if len(resp) == 0 {
		return 0
	}

	peak := 0
	for i, b := range resp {
		if b.MagnitudeDB > resp[peak].MagnitudeDB {
			peak = i
		}
	}

	target := resp[peak].MagnitudeDB + cutoffDropDB
	for i := peak + 1; i < len(resp); i++ {
		if resp[i].MagnitudeDB > target {
			continue
		}

		lo, hi := resp[i-1], resp[i]
		span := lo.MagnitudeDB - hi.MagnitudeDB
		if span <= 0 {
			return hi.FreqHz
		}

		frac := (lo.MagnitudeDB - target) / span

		return lo.FreqHz + frac*(hi.FreqHz-lo.FreqHz)
	}

	return 0
}

// schroederIntegral returns the normalized backward energy integral in dB
// and the total energy.
func schroederIntegral(ir []float64) ([]float64, float64) {
	n := len(ir)
	result := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += ir[i] * ir[i]
		result[i] = cumSum
	}

	totalEnergy := result[0]
	if totalEnergy <= 0 {
		for i := range result {
			result[i] = schroederFloorDB
		}

		return result, 0
	}

	for i := range result {
		ratio := result[i] / totalEnergy
		if ratio <= 0 {
			result[i] = schroederFloorDB
		} else {
			result[i] = 10 * math.Log10(ratio)
		}
	}

	return result, totalEnergy
}

// decayTime fits a line to the Schroeder curve between startDB and endDB and
// extrapolates it to -60 dB.
func (a *Analyzer) decayTime(schroeder []float64, startDB, endDB float64) float64 {
	if len(schroeder) == 0 || a.SampleRate <= 0 {
		return 0
	}

	startIdx := -1
	endIdx := -1

	for i, v := range schroeder {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx < 0 || endIdx <= startIdx {
		return 0
	}

	xs := make([]float64, endIdx-startIdx+1)
	for i := range xs {
		xs[i] = float64(i)
	}

	// dB per sample
	_, slope := stat.LinearRegression(xs, schroeder[startIdx:endIdx+1], nil, false)
	if slope >= 0 {
		return 0
	}

	return -60.0 / (slope * a.SampleRate)
}

func (a *Analyzer) tailLength(schroeder []float64, floorDB float64) float64 {
	for i, v := range schroeder {
		if v <= floorDB {
			return float64(i) / a.SampleRate
		}
	}

	return float64(len(schroeder)) / a.SampleRate
}

// findPeak returns the index of the absolute maximum in the IR.
func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}

func nextPow2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}

	return p
}
