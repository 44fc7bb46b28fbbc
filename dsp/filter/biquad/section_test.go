package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lfofilter/internal/testutil"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns coefficients for a unity gain passthrough (B0=1, all else 0).
func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// simpleLowpass returns a two-tap average: H(z) = 0.5*(1 + z^-1).
func simpleLowpass() Coefficients {
	return Coefficients{B0: 0.5, B1: 0.5}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestIdentityImpulse(t *testing.T) {
	var st State
	c := Identity()

	in := testutil.Impulse(16, 0)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = st.ProcessSample(&c, x)
	}

	// Identity must reproduce the impulse exactly.
	for i := range out {
		if out[i] != in[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestProcessSample_DirectFormI(t *testing.T) {
	// Hand-traced DF-I with B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04 and
	// x = [1, 0, 0, 0]:
	//
	// n=0: y = 0.25
	// n=1: y = 0.5 + 0.2*0.25 = 0.55
	// n=2: y = 0.25 + 0.2*0.55 - 0.04*0.25 = 0.35
	// n=3: y = 0.2*0.35 - 0.04*0.55 = 0.048
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, w)
		}
	}

	if got := s.State(); !almostEqual(got[2], 0.048, eps) || !almostEqual(got[3], 0.35, eps) {
		t.Fatalf("output taps = %v, want y1=0.048 y2=0.35", got)
	}
}

func TestStateTapShift(t *testing.T) {
	var st State
	c := Coefficients{B0: 1, A1: -0.5}

	st.ProcessSample(&c, 2)  // y = 2
	st.ProcessSample(&c, -1) // y = -1 + 0.5*2 = 0

	want := [4]float64{-1, 2, 0, 2}
	if got := st.Taps(); got != want {
		t.Fatalf("Taps() = %v, want %v", got, want)
	}
}

func TestStateCoefficientSwitchKeepsMemory(t *testing.T) {
	// Swapping coefficients mid-stream must not touch the taps.
	var st State
	a := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	b := Coefficients{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1}

	st.ProcessSample(&a, 1)
	st.ProcessSample(&a, 0.5)
	before := st.Taps()

	y := st.ProcessSample(&b, 0.25)
	want := b.B0*0.25 + b.B1*before[0] + b.B2*before[1] - b.A1*before[2] - b.A2*before[3]
	if !almostEqual(y, want, eps) {
		t.Fatalf("after switch: got %v, want %v", y, want)
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	input := testutil.DeterministicNoise(4, 1, 64)

	ref := NewSection(c)
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(c)
	buf := append([]float64(nil), input...)
	s.ProcessBlock(buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 0)

	s2 := NewSection(c)
	dst := make([]float64, len(input))
	s2.ProcessBlockTo(dst, input)
	testutil.RequireSliceNearlyEqual(t, dst, want, 0)
}

func TestProcessSample_ZeroCoefficients(t *testing.T) {
	// All-zero coefficients should produce silence.
	s := NewSection(Coefficients{})
	for i := range 10 {
		if y := s.ProcessSample(1.0); y != 0 {
			t.Errorf("sample %d: got %v, want 0", i, y)
		}
	}
}

func TestProcessSample_PureDelay(t *testing.T) {
	s := NewSection(Coefficients{B1: 1})
	input := []float64{1, 2, 3, 4, 5}
	want := []float64{0, 1, 2, 3, 4}
	for i, x := range input {
		if y := s.ProcessSample(x); !almostEqual(y, want[i], eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestReset(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	s.ProcessSample(1)
	s.ProcessSample(0.5)

	if s.State() == [4]float64{} {
		t.Fatal("state should be non-zero after processing")
	}

	s.Reset()
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("state not zero after reset: %v", st)
	}
}

func TestState_SaveRestore(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	s.ProcessSample(1)
	s.ProcessSample(0.5)
	saved := s.State()

	y3 := s.ProcessSample(-0.3)
	y4 := s.ProcessSample(0.7)

	s.SetState(saved)
	y3b := s.ProcessSample(-0.3)
	y4b := s.ProcessSample(0.7)

	if !almostEqual(y3, y3b, eps) {
		t.Errorf("sample 3: got %v after restore, want %v", y3b, y3)
	}
	if !almostEqual(y4, y4b, eps) {
		t.Errorf("sample 4: got %v after restore, want %v", y4b, y4)
	}
}

func TestProcessSample_StabilityLongRun(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)
	s.ProcessSample(1)

	for range 10000 {
		s.ProcessSample(0)
	}

	// Output taps decay into the denormal range and are flushed.
	st := s.State()
	if st[2] != 0 || st[3] != 0 {
		t.Errorf("output taps did not decay to zero: %v", st)
	}
}

func TestProcessSample_SimpleLowpass(t *testing.T) {
	s := NewSection(simpleLowpass())
	input := []float64{1, 1, 1, 1}
	want := []float64{0.5, 1, 1, 1}
	for i, x := range input {
		if y := s.ProcessSample(x); !almostEqual(y, want[i], eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}
