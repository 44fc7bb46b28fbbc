package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSolve_ResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0
	q := 1 / math.Sqrt2

	for _, lp := range []FilterType{Lowpass24, Lowpass12} {
		c := Solve(lp, f, q, sr)
		if !(mag(c, 100, sr) > mag(c, 10000, sr)) {
			t.Fatalf("%v shape check failed", lp)
		}
	}

	for _, hp := range []FilterType{Highpass24, Highpass12} {
		c := Solve(hp, f, q, sr)
		if !(mag(c, 10000, sr) > mag(c, 100, sr)) {
			t.Fatalf("%v shape check failed", hp)
		}
	}

	for _, bp := range []FilterType{Bandpass24, Bandpass12} {
		c := Solve(bp, f, q, sr)
		if !(mag(c, f, sr) > mag(c, 100, sr) && mag(c, f, sr) > mag(c, 10000, sr)) {
			t.Fatalf("%v shape check failed", bp)
		}
		if !almostEqual(mag(c, f, sr), 1, 1e-9) {
			t.Fatalf("%v peak gain = %v, want 1", bp, mag(c, f, sr))
		}
	}

	n := Solve(Notch24, f, q, sr)
	if !(mag(n, f, sr) < mag(n, 100, sr) && mag(n, f, sr) < mag(n, 10000, sr)) {
		t.Fatal("notch shape check failed")
	}

	ap := Solve(Allpass24, f, q, sr)
	for _, hz := range []float64{100, 500, 1000, 5000, 10000} {
		if !almostEqual(mag(ap, hz, sr), 1, 1e-6) {
			t.Fatalf("allpass magnitude at %v Hz = %v, want ~1", hz, mag(ap, hz, sr))
		}
	}
}

func TestLowpass_LowCutoffShape(t *testing.T) {
	// Far below Nyquist the feed-forward taps are tiny with b1 = 2*b0 = 2*b2,
	// and the denominator approaches a double pole at z = 1.
	c := Solve(Lowpass24, 20, 0.707, 44100)

	if c.B0 != c.B2 {
		t.Fatalf("b0=%v, b2=%v, want equal", c.B0, c.B2)
	}
	if !almostEqual(c.B1, 2*c.B0, 1e-18) {
		t.Fatalf("b1=%v, want 2*b0=%v", c.B1, 2*c.B0)
	}
	if c.B0 <= 0 || c.B0 > 1e-5 {
		t.Fatalf("b0=%v, want small positive", c.B0)
	}
	if !almostEqual(c.A1, -2, 0.01) {
		t.Fatalf("a1=%v, want ~-2", c.A1)
	}
	if !almostEqual(c.A2, 1, 0.01) {
		t.Fatalf("a2=%v, want ~1", c.A2)
	}
}

func TestSolve_MatchesClosedForm(t *testing.T) {
	sr := 44100.0
	f := 1000.0
	q := 0.707

	w := 2 * math.Pi * f / sr
	cw, sw := math.Cos(w), math.Sin(w)
	alpha := sw / (2 * q)
	a0 := 1 + alpha

	lp := Solve(Lowpass24, f, q, sr)
	want := biquad.Coefficients{
		B0: (1 - cw) / 2 / a0,
		B1: (1 - cw) / a0,
		B2: (1 - cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
	assertCoefficientsNear(t, lp, want, 1e-15)

	k := math.Tan(w / 2)
	norm := 1 / (1 + k/q + k*k)
	hp := Solve(Highpass12, f, q, sr)
	want = biquad.Coefficients{
		B0: norm,
		B1: -2 * norm,
		B2: norm,
		A1: 2 * (k*k - 1) * norm,
		A2: (1 - k/q + k*k) * norm,
	}
	assertCoefficientsNear(t, hp, want, 1e-15)

	bp := Solve(Bandpass12, f, q, sr)
	if !almostEqual(bp.B0, k/q*norm, 1e-15) || bp.B1 != 0 || bp.B2 != -bp.B0 {
		t.Fatalf("bandpass12 feed-forward = %#v", bp)
	}
}

func TestSolve_UnknownTypeIsBypass(t *testing.T) {
	for _, ft := range []FilterType{-1, 8, 42} {
		if got := Solve(ft, 1000, 0.707, 48000); got != biquad.Identity() {
			t.Fatalf("Solve(%d) = %#v, want identity", ft, got)
		}
	}
}

func TestSolve_InvalidCutoffIsBypass(t *testing.T) {
	for _, tc := range []struct {
		name     string
		freq, sr float64
	}{
		{"zero freq", 0, 48000},
		{"negative freq", -10, 48000},
		{"at nyquist", 24000, 48000},
		{"nan freq", math.NaN(), 48000},
		{"zero rate", 1000, 0},
		{"inf rate", 1000, math.Inf(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, ft := range FilterTypes() {
				if got := Solve(ft, tc.freq, 0.707, tc.sr); got != biquad.Identity() {
					t.Fatalf("%v: got %#v, want identity", ft, got)
				}
			}
		})
	}
}

func TestSolve_QClampedToMinimum(t *testing.T) {
	want := Solve(Lowpass24, 1000, MinQ, 48000)
	for _, q := range []float64{0, -1, 0.01, math.NaN(), math.Inf(1)} {
		got := Solve(Lowpass24, 1000, q, 48000)
		if got != want {
			t.Fatalf("q=%v: got %#v, want %#v", q, got, want)
		}
		assertFiniteCoefficients(t, got)
	}
}

func TestSolve_StableAcrossSampleRates(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000, 192000} {
		for _, ft := range FilterTypes() {
			for _, f := range []float64{20, 1000, 0.49 * sr} {
				for _, q := range []float64{MinQ, 0.707, 10} {
					c := Solve(ft, f, q, sr)
					assertFiniteCoefficients(t, c)
					assertStableSection(t, c)
				}
			}
		}
	}
}

func TestParseFilterType(t *testing.T) {
	for _, ft := range FilterTypes() {
		got, err := ParseFilterType(ft.String())
		if err != nil || got != ft {
			t.Fatalf("ParseFilterType(%q) = %v, %v", ft.String(), got, err)
		}
	}

	got, err := ParseFilterType("lp12db")
	if err != nil || got != Lowpass12 {
		t.Fatalf("ParseFilterType(lp12db) = %v, %v", got, err)
	}

	if _, err := ParseFilterType("comb"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestFilterTypeString(t *testing.T) {
	if got := Notch24.String(); got != "Notch" {
		t.Fatalf("Notch24.String() = %q", got)
	}
	if got := FilterType(9).String(); got != "FilterType(9)" {
		t.Fatalf("FilterType(9).String() = %q", got)
	}
	if len(FilterTypes()) != 8 {
		t.Fatalf("len(FilterTypes()) = %d, want 8", len(FilterTypes()))
	}
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	h := c.Response(freq, sr)
	return cmplx.Abs(h)
}

func assertCoefficientsNear(t *testing.T, got, want biquad.Coefficients, eps float64) {
	t.Helper()
	g := []float64{got.B0, got.B1, got.B2, got.A1, got.A2}
	w := []float64{want.B0, want.B1, want.B2, want.A1, want.A2}
	for i := range g {
		if !almostEqual(g[i], w[i], eps) {
			t.Fatalf("coef[%d] = %v, want %v", i, g[i], w[i])
		}
	}
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	v := []float64{c.B0, c.B1, c.B2, c.A1, c.A2}
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			t.Fatalf("invalid coefficient[%d]=%v", i, v[i])
		}
	}
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	r1, r2 := sectionRoots(c)
	if cmplx.Abs(r1) >= 1+tol || cmplx.Abs(r2) >= 1+tol {
		t.Fatalf("unstable poles: |r1|=%v |r2|=%v coeff=%#v", cmplx.Abs(r1), cmplx.Abs(r2), c)
	}
}

func sectionRoots(c biquad.Coefficients) (complex128, complex128) {
	disc := complex(c.A1*c.A1-4*c.A2, 0)
	sqrtDisc := cmplx.Sqrt(disc)
	r1 := (-complex(c.A1, 0) + sqrtDisc) / 2
	r2 := (-complex(c.A1, 0) - sqrtDisc) / 2
	return r1, r2
}
