package params

import (
	"math"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

// Range maps a plain parameter value to the normalized [0, 1] domain used
// by host automation.
//
// Skew < 1 spends more of the normalized range on the low end, which suits
// frequency controls. Interval > 0 snaps plain values to a grid anchored at
// Min.
type Range struct {
	Min      float64
	Max      float64
	Interval float64
	Skew     float64
}

// Linear returns an unskewed continuous range.
func Linear(minValue, maxValue float64) Range {
	return Range{Min: minValue, Max: maxValue, Skew: 1}
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}

	return core.Clamp(v, r.Min, r.Max)
}

// Snap rounds v to the nearest legal value.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Interval > 0 {
		v = r.Min + r.Interval*math.Round((v-r.Min)/r.Interval)
		v = r.Clamp(v)
	}

	return v
}

// ToNormalized maps a plain value into [0, 1].
func (r Range) ToNormalized(v float64) float64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}

	p := (r.Clamp(v) - r.Min) / span
	if r.skew() != 1 {
		p = math.Pow(p, r.skew())
	}

	return p
}

// FromNormalized maps a normalized value in [0, 1] to a snapped plain value.
func (r Range) FromNormalized(n float64) float64 {
	if math.IsNaN(n) {
		n = 0
	}

	p := core.Clamp(n, 0, 1)
	if r.skew() != 1 && p > 0 {
		p = math.Exp(math.Log(p) / r.skew())
	}

	return r.Snap(r.Min + (r.Max-r.Min)*p)
}

func (r Range) skew() float64 {
	if r.Skew <= 0 {
		return 1
	}

	return r.Skew
}
