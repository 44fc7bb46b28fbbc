package params

import (
	"github.com/cwbudde/algo-lfofilter/dsp/filter/design"
	"github.com/cwbudde/algo-lfofilter/dsp/lfo"
)

// ID identifies a parameter in the layout and in persisted state.
type ID string

const (
	Rate        ID = "rate"
	Depth       ID = "depth"
	Waveform    ID = "waveform"
	TempoSync   ID = "temposync"
	Frequency   ID = "frequency"
	Resonance   ID = "resonance"
	FilterType  ID = "filtertype"
	Mix         ID = "mix"
	StereoWidth ID = "stereowidth"
	Feedback    ID = "feedback"
)

// Kind describes how a parameter's plain value is interpreted.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindChoice
)

// Spec describes one automatable parameter.
type Spec struct {
	ID      ID
	Name    string
	Kind    Kind
	Range   Range
	Default float64
	Choices []string
}

var layout = buildLayout()

func buildLayout() []Spec {
	waveforms := lfo.Waveforms()
	waveNames := make([]string, len(waveforms))
	for i, w := range waveforms {
		waveNames[i] = w.String()
	}

	types := design.FilterTypes()
	typeNames := make([]string, len(types))
	for i, ft := range types {
		typeNames[i] = ft.String()
	}

	return []Spec{
		{ID: Rate, Name: "LFO Rate", Kind: KindFloat, Range: Linear(0.01, 20), Default: 2},
		{ID: Depth, Name: "LFO Depth", Kind: KindFloat, Range: Linear(0, 1), Default: 0.5},
		{
			ID: Waveform, Name: "LFO Waveform", Kind: KindChoice,
			Range:   Range{Min: 0, Max: float64(len(waveNames) - 1), Interval: 1, Skew: 1},
			Choices: waveNames,
		},
		{
			ID: TempoSync, Name: "Tempo Sync", Kind: KindBool,
			Range: Range{Min: 0, Max: 1, Interval: 1, Skew: 1},
		},
		{
			ID: Frequency, Name: "Filter Frequency", Kind: KindFloat,
			Range:   Range{Min: 20, Max: 20000, Interval: 1, Skew: 0.3},
			Default: 1000,
		},
		{ID: Resonance, Name: "Resonance", Kind: KindFloat, Range: Linear(0.1, 10), Default: 0.707},
		{
			ID: FilterType, Name: "Filter Type", Kind: KindChoice,
			Range:   Range{Min: 0, Max: float64(len(typeNames) - 1), Interval: 1, Skew: 1},
			Choices: typeNames,
		},
		{ID: Mix, Name: "Dry/Wet", Kind: KindFloat, Range: Linear(0, 1), Default: 0.5},
		{ID: StereoWidth, Name: "Stereo Width", Kind: KindFloat, Range: Linear(0, 2), Default: 1},
		{ID: Feedback, Name: "Feedback", Kind: KindFloat, Range: Linear(0, 0.95), Default: 0},
	}
}

// Layout returns the parameter layout in host order.
func Layout() []Spec {
	out := make([]Spec, len(layout))
	copy(out, layout)

	return out
}

// Lookup returns the spec for id.
func Lookup(id ID) (Spec, bool) {
	for _, s := range layout {
		if s.ID == id {
			return s, true
		}
	}

	return Spec{}, false
}
