package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

// Response returns H(e^jw) at freqHz:
//
//	H = (B0 + B1 e^-jw + B2 e^-2jw) / (1 + A1 e^-jw + A2 e^-2jw)
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 in closed form. Rounding below zero at
// a notch is reported as 0.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return max(num/den, 0)
}

// MagnitudeDB returns the gain at freqHz in dB, -Inf at an exact zero.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearPowerToDB(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in [-pi, pi].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Poles returns the roots of 1 + A1 z^-1 + A2 z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 + B1 z^-1 + B2 z^-2. A first-order
// numerator reports its second zero as 0.
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleRadius returns the largest pole magnitude. Resonance pushes it toward
// 1; a section with radius >= 1 is unstable.
func (c *Coefficients) PoleRadius() float64 {
	p := c.Poles()
	return max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) Stable() bool {
	return c.PoleRadius() < 1
}

// ImpulseResponse returns the first n output samples of c for a unit
// impulse, starting from silence.
func ImpulseResponse(c *Coefficients, n int) []float64 {
	if n <= 0 {
		return nil
	}

	var st State
	out := make([]float64, n)
	out[0] = st.ProcessSample(c, 1)
	for i := 1; i < n; i++ {
		out[i] = st.ProcessSample(c, 0)
	}

	return out
}

// ImpulseResponse returns n samples of the section's impulse response. The
// section state is left untouched.
func (s *Section) ImpulseResponse(n int) []float64 {
	return ImpulseResponse(&s.Coefficients, n)
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sq := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sq) / den,
		(-complex(b, 0) - sq) / den,
	}
}
