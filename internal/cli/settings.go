// Package cli holds the flag handling shared by the command-line tools.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/design"
	"github.com/cwbudde/algo-lfofilter/dsp/lfo"
	"github.com/cwbudde/algo-lfofilter/params"
)

// Settings binds engine parameters to a flag set.
type Settings struct {
	fs *flag.FlagSet

	preset     string
	rate       float64
	depth      float64
	waveform   string
	tempoSync  bool
	cutoff     float64
	q          float64
	filterType string
	mix        float64
	width      float64
	feedback   float64
	bpm        float64
}

// Register adds the parameter flags to fs. Defaults come from the parameter
// layout.
func Register(fs *flag.FlagSet) *Settings {
	d := params.Defaults()
	s := &Settings{fs: fs}

	fs.StringVar(&s.preset, "preset", "", "JSON preset file (parameter ID -> value)")
	fs.Float64Var(&s.rate, "rate", d.RateHz, "LFO rate in Hz (or division selector with -temposync)")
	fs.Float64Var(&s.depth, "depth", d.Depth, "modulation depth [0, 1]")
	fs.StringVar(&s.waveform, "waveform", d.Waveform.String(), "LFO waveform: "+joinNames(waveformNames()))
	fs.BoolVar(&s.tempoSync, "temposync", d.TempoSync, "derive the LFO rate from the host tempo")
	fs.Float64Var(&s.cutoff, "cutoff", d.CutoffHz, "base cutoff frequency in Hz")
	fs.Float64Var(&s.q, "q", d.Q, "filter resonance (Q)")
	fs.StringVar(&s.filterType, "type", d.FilterType.String(), "filter type: "+joinNames(filterTypeNames()))
	fs.Float64Var(&s.mix, "mix", d.Mix, "dry/wet mix [0, 1]")
	fs.Float64Var(&s.width, "width", d.StereoWidth, "stereo phase offset [0, 2]")
	fs.Float64Var(&s.feedback, "feedback", d.Feedback, "output feedback [0, 0.95]")
	fs.Float64Var(&s.bpm, "bpm", 120, "host tempo used with -temposync")

	return s
}

// BPM returns the tempo flag value.
func (s *Settings) BPM() float64 { return s.bpm }

// Store builds a parameter store. A preset is applied first, then every
// flag given explicitly on the command line overrides it.
func (s *Settings) Store() (*params.Store, error) {
	store := params.NewStore()

	if s.preset != "" {
		state, err := LoadPreset(s.preset)
		if err != nil {
			return nil, err
		}
		store.Restore(state)
	}

	var firstErr error
	s.fs.Visit(func(f *flag.Flag) {
		if firstErr != nil {
			return
		}
		if err := s.apply(store, f.Name); err != nil {
			firstErr = fmt.Errorf("flag -%s: %w", f.Name, err)
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}

	return store, nil
}

func (s *Settings) apply(store *params.Store, name string) error {
	switch name {
	case "rate":
		return store.Set(params.Rate, s.rate)
	case "depth":
		return store.Set(params.Depth, s.depth)
	case "waveform":
		w, err := lfo.ParseWaveform(s.waveform)
		if err != nil {
			return err
		}
		return store.Set(params.Waveform, float64(w))
	case "temposync":
		return store.Set(params.TempoSync, boolValue(s.tempoSync))
	case "cutoff":
		return store.Set(params.Frequency, s.cutoff)
	case "q":
		return store.Set(params.Resonance, s.q)
	case "type":
		t, err := design.ParseFilterType(s.filterType)
		if err != nil {
			return err
		}
		return store.Set(params.FilterType, float64(t))
	case "mix":
		return store.Set(params.Mix, s.mix)
	case "width":
		return store.Set(params.StereoWidth, s.width)
	case "feedback":
		return store.Set(params.Feedback, s.feedback)
	}

	return nil
}

// LoadPreset reads a JSON object of parameter IDs to plain values.
func LoadPreset(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}

	var state map[string]float64
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}

	return state, nil
}

// SavePreset writes the store state as indented JSON.
func SavePreset(path string, store *params.Store) error {
	data, err := json.MarshalIndent(store.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}

	return nil
}

// LogFeatures reports the SIMD features used by the vector kernels.
func LogFeatures(logger *log.Logger) {
	f := cpu.DetectFeatures()
	logger.Printf("CPU: %s (SSE2=%t AVX=%t AVX2=%t AVX512=%t NEON=%t)",
		f.Architecture, f.HasSSE2, f.HasAVX, f.HasAVX2, f.HasAVX512, f.HasNEON)
}

// LogParameters prints one line per parameter.
func LogParameters(logger *log.Logger, p params.Parameters) {
	logger.Printf("LFO: %s at %.3f Hz, depth %.2f, temposync %t, width %.2f",
		p.Waveform, p.RateHz, p.Depth, p.TempoSync, p.StereoWidth)
	logger.Printf("Filter: %s at %.1f Hz, Q %.2f, mix %.2f, feedback %.2f",
		p.FilterType, p.CutoffHz, p.Q, p.Mix, p.Feedback)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func waveformNames() []string {
	ws := lfo.Waveforms()
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

func filterTypeNames() []string {
	ts := design.FilterTypes()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func joinNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
