package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
	"github.com/cwbudde/algo-lfofilter/dsp/effects/modulation"
	"github.com/cwbudde/algo-lfofilter/dsp/signal"
	"github.com/cwbudde/algo-lfofilter/host"
	"github.com/cwbudde/algo-lfofilter/internal/cli"
	"github.com/cwbudde/algo-lfofilter/params"
)

type options struct {
	settings  *cli.Settings
	rate      int
	channels  int
	blockSize int
	bufferMs  int
	osc       string
	oscFreq   float64
	oscAmp    float64
	duration  float64
	seed      int64
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("lfoplay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{settings: cli.Register(fs)}
	fs.IntVar(&o.rate, "sr", 48000, "output sample rate in Hz")
	fs.IntVar(&o.channels, "channels", 2, "output channel count (1 or 2)")
	fs.IntVar(&o.blockSize, "block", 256, "processing block size in samples")
	fs.IntVar(&o.bufferMs, "buffer", 40, "device buffer length in milliseconds")
	fs.StringVar(&o.osc, "osc", "saw", "source oscillator: sine, saw, noise")
	fs.Float64Var(&o.oscFreq, "osc-freq", 110, "source oscillator frequency in Hz")
	fs.Float64Var(&o.oscAmp, "osc-amp", 0.3, "source oscillator amplitude")
	fs.Float64Var(&o.duration, "duration", 0, "stop after this many seconds (0 plays until interrupted)")
	fs.Int64Var(&o.seed, "seed", 1, "noise oscillator seed")
	fs.BoolVar(&o.verbose, "v", false, "verbose output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lfoplay [flags]\n\n")
		fmt.Fprintf(stderr, "Plays a test oscillator through the LFO-modulated filter.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return nil, errors.New("unexpected arguments")
	}

	if o.bufferMs <= 0 {
		return nil, fmt.Errorf("buffer must be > 0 ms: %d", o.bufferMs)
	}

	return o, nil
}

// meter publishes engine state from the audio goroutine to the status line.
type meter struct {
	proc    *modulation.LFOFilter
	phase   atomic.Uint64
	cutoffs [core.MaxChannels]atomic.Uint64
	blocks  atomic.Uint64
}

func (m *meter) Process(buf [][]float64) error {
	if err := m.proc.Process(buf); err != nil {
		return err
	}

	m.phase.Store(math.Float64bits(m.proc.Phase()))
	for ch := range len(buf) {
		m.cutoffs[ch].Store(math.Float64bits(m.proc.SmoothedCutoffHz(ch)))
	}
	m.blocks.Add(1)

	return nil
}

type session struct {
	opts      *options
	store     *params.Store
	transport *host.Transport
	meter     *meter
	stream    *host.Stream
	osc       *signal.Oscillator
}

func newSession(o *options) (*session, error) {
	store, err := o.settings.Store()
	if err != nil {
		return nil, err
	}

	if o.channels < 1 || o.channels > core.MaxChannels {
		return nil, fmt.Errorf("%w: %d channels", host.ErrUnsupportedLayout, o.channels)
	}

	kind, err := signal.ParseKind(o.osc)
	if err != nil {
		return nil, err
	}

	osc, err := signal.NewOscillator(kind, o.oscFreq, o.oscAmp, float64(o.rate), o.seed)
	if err != nil {
		return nil, err
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(o.rate)),
		core.WithBlockSize(o.blockSize),
		core.WithChannels(o.channels),
	)

	transport := o.settings.Transport()

	engine, err := o.settings.NewEngine(store, transport, cfg)
	if err != nil {
		return nil, err
	}

	m := &meter{proc: engine}

	stream, err := host.NewStream(m, o.channels, o.blockSize)
	if err != nil {
		return nil, err
	}

	s := &session{opts: o, store: store, transport: transport, meter: m, stream: stream, osc: osc}
	stream.SetInput(s.fill)

	return s, nil
}

// fill renders the oscillator into the first channel and copies it to the
// others.
func (s *session) fill(dst [][]float64) {
	s.osc.Fill(dst[0])
	for ch := 1; ch < len(dst); ch++ {
		copy(dst[ch], dst[0])
	}
}

func (s *session) elapsedSeconds() float64 {
	return float64(s.meter.blocks.Load()) * float64(s.opts.blockSize) / float64(s.opts.rate)
}

func (s *session) status() string {
	phase := math.Float64frombits(s.meter.phase.Load())
	line := fmt.Sprintf("%6.1fs  phase %.2f  cutoff", s.elapsedSeconds(), phase)
	for ch := range s.opts.channels {
		line += fmt.Sprintf(" %7.1f Hz", math.Float64frombits(s.meter.cutoffs[ch].Load()))
	}

	if bpm, ok := s.transport.TempoBPM(); ok {
		line += fmt.Sprintf("  %.1f bpm", bpm)
	}

	if f := s.stream.Failures(); f > 0 {
		line += fmt.Sprintf("  failures %d", f)
	}

	return line
}

func (s *session) done() bool {
	return s.opts.duration > 0 && s.elapsedSeconds() >= s.opts.duration
}

// command applies one line typed during playback: a number retunes the
// transport tempo in BPM and "stop" removes it.
func (s *session) command(line string) error {
	line = strings.TrimSpace(line)

	switch line {
	case "":
		return nil
	case "stop":
		s.transport.Clear()
		return nil
	}

	bpm, err := strconv.ParseFloat(line, 64)
	if err != nil || bpm <= 0 || math.IsInf(bpm, 0) {
		return fmt.Errorf("tempo must be a positive BPM or \"stop\": %q", line)
	}

	s.transport.SetTempo(bpm)

	return nil
}
