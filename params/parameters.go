package params

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/design"
	"github.com/cwbudde/algo-lfofilter/dsp/lfo"
)

// ErrUnknownParameter is returned for IDs outside the layout.
var ErrUnknownParameter = errors.New("params: unknown parameter")

// Parameters is one consistent set of control values. The engine reads a
// copy once per block.
type Parameters struct {
	RateHz      float64
	Depth       float64
	Waveform    lfo.Waveform
	TempoSync   bool
	CutoffHz    float64
	Q           float64
	FilterType  design.FilterType
	Mix         float64
	StereoWidth float64
	Feedback    float64
}

// Source supplies parameter snapshots to the audio thread.
type Source interface {
	Snapshot() Parameters
}

// Defaults returns the layout defaults.
func Defaults() Parameters {
	var p Parameters
	for _, s := range layout {
		_ = p.Set(s.ID, s.Default)
	}

	return p
}

// Get returns the plain value of id. Choices are returned as their index and
// booleans as 0 or 1.
func (p Parameters) Get(id ID) (float64, error) {
	switch id {
	case Rate:
		return p.RateHz, nil
	case Depth:
		return p.Depth, nil
	case Waveform:
		return float64(p.Waveform), nil
	case TempoSync:
		if p.TempoSync {
			return 1, nil
		}

		return 0, nil
	case Frequency:
		return p.CutoffHz, nil
	case Resonance:
		return p.Q, nil
	case FilterType:
		return float64(p.FilterType), nil
	case Mix:
		return p.Mix, nil
	case StereoWidth:
		return p.StereoWidth, nil
	case Feedback:
		return p.Feedback, nil
	default:
		return 0, errUnknown(id)
	}
}

// Set stores a plain value for id, snapped into the parameter's range.
// Booleans are true above 0.5.
func (p *Parameters) Set(id ID, v float64) error {
	spec, ok := Lookup(id)
	if !ok {
		return errUnknown(id)
	}

	if spec.Kind == KindBool {
		// Threshold before snapping so 0.5 itself stays false.
		if v > 0.5 {
			v = 1
		} else {
			v = 0
		}
	}

	v = spec.Range.Snap(v)

	switch id {
	case Rate:
		p.RateHz = v
	case Depth:
		p.Depth = v
	case Waveform:
		p.Waveform = lfo.Waveform(int(v))
	case TempoSync:
		p.TempoSync = v > 0.5
	case Frequency:
		p.CutoffHz = v
	case Resonance:
		p.Q = v
	case FilterType:
		p.FilterType = design.FilterType(int(v))
	case Mix:
		p.Mix = v
	case StereoWidth:
		p.StereoWidth = v
	case Feedback:
		p.Feedback = v
	}

	return nil
}

// Clamped returns p with every field forced into its layout range.
func (p Parameters) Clamped() Parameters {
	out := p
	for _, s := range layout {
		v, _ := p.Get(s.ID)
		_ = out.Set(s.ID, v)
	}

	return out
}

func errUnknown(id ID) error {
	return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
}
