package cli

import (
	"fmt"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
	"github.com/cwbudde/algo-lfofilter/dsp/effects/modulation"
	"github.com/cwbudde/algo-lfofilter/dsp/lfo"
	"github.com/cwbudde/algo-lfofilter/host"
	"github.com/cwbudde/algo-lfofilter/params"
)

// Transport returns a host transport preset to the -bpm tempo. It may be
// retuned while an engine built on it is running.
func (s *Settings) Transport() *host.Transport {
	t := &host.Transport{}
	t.SetTempo(s.bpm)

	return t
}

// NewEngine creates an LFO filter reading from store, clocked by tempo and
// prepared for cfg. A nil tempo uses the fixed -bpm value.
func (s *Settings) NewEngine(store *params.Store, tempo lfo.TempoSource, cfg core.ProcessorConfig) (*modulation.LFOFilter, error) {
	if tempo == nil {
		tempo = host.FixedTempo{BPM: s.bpm}
	}

	f, err := modulation.NewLFOFilter(store, modulation.WithLFOFilterTransport(tempo))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	if err := f.Prepare(cfg); err != nil {
		return nil, fmt.Errorf("prepare engine: %w", err)
	}

	return f, nil
}
