package lfo

import "testing"

func TestRandomHoldReseedDemotes(t *testing.T) {
	h := NewRandomHold(1)
	h.Reseed()
	_, first, _ := h.State()

	h.Advance(0.4)
	h.Reseed()

	last, next, interp := h.State()
	if last != first {
		t.Fatalf("last = %v, want previous next %v", last, first)
	}
	if interp != 0 {
		t.Fatalf("interp = %v, want 0 after reseed", interp)
	}
	if next < -1 || next > 1 {
		t.Fatalf("next = %v outside [-1, 1]", next)
	}
}

func TestRandomHoldInterpolation(t *testing.T) {
	h := NewRandomHold(3)
	h.Reseed()
	h.Reseed()

	last, next, _ := h.State()
	h.Advance(0.25)

	want := last + (next-last)*0.25
	if got := h.Value(); got != want {
		t.Fatalf("Value() = %v, want %v", got, want)
	}

	h.Advance(10)
	if _, _, interp := h.State(); interp != 1 {
		t.Fatalf("interp = %v, want saturation at 1", interp)
	}
}

func TestRandomHoldDeterministicPerSeed(t *testing.T) {
	a := NewRandomHold(99)
	b := NewRandomHold(99)

	for range 32 {
		a.Reseed()
		b.Reseed()
		_, na, _ := a.State()
		_, nb, _ := b.State()
		if na != nb {
			t.Fatalf("same seed diverged: %v vs %v", na, nb)
		}
	}
}

func TestRandomHoldReset(t *testing.T) {
	h := NewRandomHold(5)
	h.Reseed()
	h.Reseed()
	h.Advance(0.5)
	h.Reset()

	last, next, interp := h.State()
	if last != 0 || next != 0 || interp != 0 {
		t.Fatalf("State() after Reset = (%v, %v, %v), want zeros", last, next, interp)
	}
	if h.Value() != 0 {
		t.Fatalf("Value() after Reset = %v", h.Value())
	}
}

func TestRandomHoldStep(t *testing.T) {
	h := NewRandomHold(3)

	if got := h.Step(0, 0.01, 100); got != 0 {
		t.Fatalf("Step at cycle start = %v, want 0 (glide starts at the old target)", got)
	}

	_, target, _ := h.State()

	h.Step(0.5, 0.01, 100)

	if _, next, interp := h.State(); next != target || interp != 0.005 {
		t.Fatalf("mid-cycle Step: next=%v interp=%v, want next=%v interp=0.005", next, interp, target)
	}

	h.Step(0.004, 0.01, 100)

	last, next, interp := h.State()
	if last != target || next == target {
		t.Fatalf("boundary Step did not reseed: last=%v next=%v", last, next)
	}

	if interp != 0.004/100 {
		t.Fatalf("interp after reseed = %v, want %v", interp, 0.004/100)
	}

	h.Step(0.9, 0.01, 0)

	if _, _, got := h.State(); got != interp {
		t.Fatalf("zero period advanced the glide: %v", got)
	}
}
