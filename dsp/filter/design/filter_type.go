package design

import (
	"errors"
	"fmt"
	"strings"
)

// FilterType selects the response of the modulated biquad.
type FilterType int

const (
	Lowpass24 FilterType = iota
	Highpass24
	Bandpass24
	Notch24
	Allpass24
	Lowpass12
	Highpass12
	Bandpass12
)

// ErrUnknownFilterType is returned by ParseFilterType for unrecognized names.
var ErrUnknownFilterType = errors.New("design: unknown filter type")

var filterTypeNames = [...]string{
	Lowpass24:  "Lowpass",
	Highpass24: "Highpass",
	Bandpass24: "Bandpass",
	Notch24:    "Notch",
	Allpass24:  "Allpass",
	Lowpass12:  "LP 12dB",
	Highpass12: "HP 12dB",
	Bandpass12: "BP 12dB",
}

// FilterTypes returns all supported filter types in parameter order.
func FilterTypes() []FilterType {
	out := make([]FilterType, len(filterTypeNames))
	for i := range out {
		out[i] = FilterType(i)
	}

	return out
}

// Valid reports whether t is one of the supported filter types.
func (t FilterType) Valid() bool {
	return t >= Lowpass24 && t <= Bandpass12
}

// String returns the display name of t.
func (t FilterType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("FilterType(%d)", int(t))
	}

	return filterTypeNames[t]
}

// ParseFilterType resolves a display name case-insensitively. Spaces are
// ignored, so "lp12db" and "LP 12dB" are equivalent.
func ParseFilterType(name string) (FilterType, error) {
	key := compactName(name)
	for i, n := range filterTypeNames {
		if compactName(n) == key {
			return FilterType(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFilterType, name)
}

func compactName(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
