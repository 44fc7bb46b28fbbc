package design

import (
	"math"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/biquad"
)

// MinQ is the smallest quality factor accepted by the designers. Lower,
// zero, negative or non-finite values are raised to MinQ.
const MinQ = 0.1

// Solve designs the coefficients for filter type t at freq (Hz).
//
// Unknown filter types, and cutoffs outside (0, sampleRate/2), yield
// identity (bypass) coefficients.
func Solve(t FilterType, freq, q, sampleRate float64) biquad.Coefficients {
	switch t {
	case Lowpass24:
		return Lowpass(freq, q, sampleRate)
	case Highpass24:
		return Highpass(freq, q, sampleRate)
	case Bandpass24:
		return Bandpass(freq, q, sampleRate)
	case Notch24:
		return Notch(freq, q, sampleRate)
	case Allpass24:
		return Allpass(freq, q, sampleRate)
	case Lowpass12:
		return LowpassBilinear(freq, q, sampleRate)
	case Highpass12:
		return HighpassBilinear(freq, q, sampleRate)
	case Bandpass12:
		return BandpassBilinear(freq, q, sampleRate)
	default:
		return biquad.Identity()
	}
}

// Lowpass designs an RBJ lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2

	return normalizeBiquad(b0, b1, b2, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs an RBJ highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2

	return normalizeBiquad(b0, b1, b2, 1+alpha, -2*cw, 1-alpha)
}

// Bandpass designs a constant 0 dB peak gain bandpass biquad.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha)
}

// Notch designs a notch biquad centered at freq (Hz).
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}

// Allpass designs an allpass biquad centered at freq (Hz).
func Allpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := rbjTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	return normalizeBiquad(1-alpha, -2*cw, 1+alpha, 1+alpha, -2*cw, 1-alpha)
}

// LowpassBilinear designs a 12 dB/oct lowpass from the prewarped analog
// prototype.
func LowpassBilinear(freq, q, sampleRate float64) biquad.Coefficients {
	k, norm, q, ok := bilinearTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	b0 := k * k * norm

	return bilinearSection(b0, 2*b0, b0, k, norm, q)
}

// HighpassBilinear designs a 12 dB/oct highpass from the prewarped analog
// prototype.
func HighpassBilinear(freq, q, sampleRate float64) biquad.Coefficients {
	k, norm, q, ok := bilinearTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	return bilinearSection(norm, -2*norm, norm, k, norm, q)
}

// BandpassBilinear designs a 12 dB/oct bandpass from the prewarped analog
// prototype.
func BandpassBilinear(freq, q, sampleRate float64) biquad.Coefficients {
	k, norm, q, ok := bilinearTerms(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}

	b0 := k / q * norm

	return bilinearSection(b0, 0, -b0, k, norm, q)
}

func rbjTerms(freq, q, sampleRate float64) (cw, alpha float64, ok bool) {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return 0, 0, false
	}

	q = normalizedQ(q)

	return math.Cos(w0), math.Sin(w0) / (2 * q), true
}

func bilinearTerms(freq, q, sampleRate float64) (k, norm, qn float64, ok bool) {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return 0, 0, 0, false
	}

	qn = normalizedQ(q)
	k = math.Tan(w0 / 2)
	norm = 1 / (1 + k/qn + k*k)

	return k, norm, qn, true
}

// bilinearSection shares the denominator of the 12 dB forms; a0 is already 1.
func bilinearSection(b0, b1, b2, k, norm, q float64) biquad.Coefficients {
	a1 := 2 * (k*k - 1) * norm
	a2 := (1 - k/q + k*k) * norm

	return normalizeBiquad(b0, b1, b2, 1, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q < MinQ || math.IsNaN(q) || math.IsInf(q, 0) {
		return MinQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
