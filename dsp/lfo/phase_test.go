package lfo

import (
	"math"
	"testing"
)

func TestAccumulatorWraps(t *testing.T) {
	var a Accumulator
	inc := Increment(2, 44100)

	for range 100000 {
		p := a.Advance(inc)
		if p < 0 || p >= 1 {
			t.Fatalf("phase %v outside [0, 1)", p)
		}
	}

	want := math.Mod(100000*inc, 1)
	if math.Abs(a.Phase()-want) > 1e-9 {
		t.Fatalf("phase = %v, want %v", a.Phase(), want)
	}
}

func TestAccumulatorAdvanceBlock(t *testing.T) {
	var perSample, perBlock Accumulator
	inc := Increment(5, 48000)

	for range 512 {
		perSample.Advance(inc)
	}
	perBlock.AdvanceBlock(inc, 512)

	if math.Abs(perSample.Phase()-perBlock.Phase()) > 1e-12 {
		t.Fatalf("block advance %v != per-sample advance %v", perBlock.Phase(), perSample.Phase())
	}
}

func TestAccumulatorLargeStep(t *testing.T) {
	var a Accumulator
	a.AdvanceBlock(0.3, 10)

	if math.Abs(a.Phase()-0) > 1e-12 && math.Abs(a.Phase()-1) > 1e-12 {
		t.Fatalf("phase = %v, want wrap to 0", a.Phase())
	}
	if a.Phase() >= 1 {
		t.Fatalf("phase %v not wrapped", a.Phase())
	}
}

func TestAccumulatorResetAndSet(t *testing.T) {
	var a Accumulator
	a.SetPhase(1.75)
	if a.Phase() != 0.75 {
		t.Fatalf("SetPhase(1.75) -> %v, want 0.75", a.Phase())
	}
	a.Reset()
	if a.Phase() != 0 {
		t.Fatalf("Reset() -> %v", a.Phase())
	}
}

func TestStereoOffset(t *testing.T) {
	tests := []struct {
		phase, width, want float64
	}{
		{0.1, 1, 0.1},
		{0.1, 0, 0.6},
		{0.7, 0, 0.2},
		{0.1, 2, 0.6},
		{0.25, 1.5, 0},
	}

	for _, tt := range tests {
		got := StereoOffset(tt.phase, tt.width)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("StereoOffset(%v, %v) = %v, want %v", tt.phase, tt.width, got, tt.want)
		}
	}
}

func TestCycleStartAndPeriod(t *testing.T) {
	inc := Increment(1, 100)
	if !CycleStart(0.005, inc) {
		t.Fatal("expected cycle start just after wrap")
	}
	if CycleStart(0.5, inc) {
		t.Fatal("unexpected cycle start mid-cycle")
	}
	if got := PeriodSamples(2, 44100); got != 22050 {
		t.Fatalf("PeriodSamples = %v, want 22050", got)
	}
	if got := PeriodSamples(0, 44100); got != 0 {
		t.Fatalf("PeriodSamples(0) = %v, want 0", got)
	}
	if got := Increment(2, 0); got != 0 {
		t.Fatalf("Increment with zero sample rate = %v", got)
	}
}
