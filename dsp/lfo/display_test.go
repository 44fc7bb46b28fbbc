package lfo

import (
	"math"
	"testing"
)

func TestDisplayValueMatchesShape(t *testing.T) {
	for _, w := range []Waveform{WaveformSine, WaveformTriangle, WaveformSquare, WaveformSaw} {
		for i := range 64 {
			phase := float64(i) / 64
			if DisplayValue(w, phase) != Shape(w, phase) {
				t.Fatalf("DisplayValue(%v, %v) differs from Shape", w, phase)
			}
		}
	}
}

func TestDisplayRandomDeterministic(t *testing.T) {
	a := DisplayCurve(make([]float64, 200), WaveformRandom)
	b := DisplayCurve(make([]float64, 200), WaveformRandom)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("column %d differs between repaints: %v vs %v", i, a[i], b[i])
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("column %d = %v outside [-1, 1]", i, a[i])
		}
	}
}

func TestDisplayY(t *testing.T) {
	tests := []struct {
		value, want float64
	}{
		{0, 50},
		{1, 10},
		{-1, 90},
	}

	for _, tt := range tests {
		if got := DisplayY(tt.value, 100); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DisplayY(%v, 100) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
