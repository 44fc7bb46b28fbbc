// Command lfofilter renders audio offline through the LFO-modulated filter.
//
// Usage:
//
//	lfofilter [flags] [input.wav] output.wav
//
// Without an input file a test oscillator is rendered instead.
//
// Examples:
//
//	lfofilter -type "BP 12dB" -rate 0.5 -depth 0.8 in.wav out.wav
//	lfofilter -osc saw -duration 4 -waveform random out.wav
//	lfofilter -preset sweep.json -analyze in.wav out.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
	"github.com/cwbudde/algo-lfofilter/dsp/signal"
	"github.com/cwbudde/algo-lfofilter/host"
	"github.com/cwbudde/algo-lfofilter/internal/cli"
	"github.com/cwbudde/algo-lfofilter/internal/wavio"
	"github.com/cwbudde/algo-lfofilter/measure/ir"
	"github.com/cwbudde/algo-lfofilter/params"
)

const (
	defaultSampleRate = 44100
	defaultDuration   = 2.0
	defaultOscFreq    = 110.0
	defaultOscAmp     = 0.5
	analysisLength    = 8192
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	settings   *cli.Settings
	blockSize  int
	verbose    bool
	analyze    bool
	savePreset string
	normalize  float64

	osc      string
	oscFreq  float64
	duration float64
	rate     int
	channels int
	bits     int
	seed     int64
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet("lfofilter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{settings: cli.Register(fs)}
	fs.IntVar(&o.blockSize, "block", 512, "processing block size in samples")
	fs.BoolVar(&o.verbose, "v", false, "verbose output")
	fs.BoolVar(&o.analyze, "analyze", false, "print impulse response metrics of the filter at the base cutoff")
	fs.Float64Var(&o.normalize, "normalize", 0, "scale the rendered output to this peak (0 disables)")
	fs.StringVar(&o.savePreset, "save-preset", "", "write the effective parameters to a JSON preset")
	fs.StringVar(&o.osc, "osc", "saw", "test oscillator when no input file is given: sine, saw, noise")
	fs.Float64Var(&o.oscFreq, "osc-freq", defaultOscFreq, "test oscillator frequency in Hz")
	fs.Float64Var(&o.duration, "duration", defaultDuration, "test oscillator duration in seconds")
	fs.IntVar(&o.rate, "sr", defaultSampleRate, "test oscillator sample rate in Hz")
	fs.IntVar(&o.channels, "channels", 2, "test oscillator channel count (1 or 2)")
	fs.IntVar(&o.bits, "bits", 16, "output bit depth: 16, 24, 32")
	fs.Int64Var(&o.seed, "seed", 1, "noise oscillator seed")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lfofilter [flags] [input.wav] output.wav\n\n")
		fmt.Fprintf(stderr, "Renders audio through the LFO-modulated filter.\n")
		fmt.Fprintf(stderr, "Without an input file a test oscillator is rendered.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		fs.Usage()
		return nil, nil, errors.New("expected [input.wav] output.wav")
	}

	return o, rest, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, files, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if o.verbose {
		logger.SetOutput(stderr)
		cli.LogFeatures(logger)
	}

	store, err := o.settings.Store()
	if err != nil {
		return err
	}
	cli.LogParameters(logger, store.Snapshot())

	var clip *wavio.Clip
	output := files[len(files)-1]
	if len(files) == 2 {
		clip, err = wavio.ReadFile(files[0])
		if err != nil {
			return err
		}
		clip.BitDepth = o.bits
		logger.Printf("Input: %s (%d Hz, %d channels, %d frames)", files[0], clip.SampleRate, clip.Channels(), clip.Frames())
	} else {
		clip, err = oscillatorClip(o)
		if err != nil {
			return err
		}
		logger.Printf("Input: %s oscillator at %.1f Hz for %.2f s", o.osc, o.oscFreq, o.duration)
	}

	if err := render(o, store, clip); err != nil {
		return err
	}

	if o.normalize != 0 {
		if err := signal.NormalizePlanar(clip.Data, o.normalize); err != nil {
			return err
		}
		logger.Printf("Normalized output to peak %.3f", o.normalize)
	}

	if err := wavio.WriteFile(output, clip); err != nil {
		return err
	}
	logger.Printf("Output: %s", output)

	if o.savePreset != "" {
		if err := cli.SavePreset(o.savePreset, store); err != nil {
			return err
		}
		logger.Printf("Preset: %s", o.savePreset)
	}

	if o.analyze {
		return analyze(stdout, o, store, float64(clip.SampleRate))
	}

	return nil
}

func render(o *options, store *params.Store, clip *wavio.Clip) error {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBlockSize(o.blockSize),
		core.WithChannels(clip.Channels()),
	)

	engine, err := o.settings.NewEngine(store, nil, cfg)
	if err != nil {
		return err
	}

	stream, err := host.NewStream(engine, clip.Channels(), o.blockSize)
	if err != nil {
		return err
	}

	samples := clip.Interleaved()
	if err := stream.ProcessInterleaved(samples); err != nil {
		return err
	}

	out, err := wavio.FromInterleaved(samples, clip.Channels(), clip.SampleRate, clip.BitDepth)
	if err != nil {
		return err
	}
	clip.Data = out.Data

	return nil
}

func oscillatorClip(o *options) (*wavio.Clip, error) {
	kind, err := signal.ParseKind(o.osc)
	if err != nil {
		return nil, err
	}

	if o.channels < 1 || o.channels > core.MaxChannels {
		return nil, fmt.Errorf("channel count must be in [1, %d]: %d", core.MaxChannels, o.channels)
	}

	if o.duration <= 0 {
		return nil, fmt.Errorf("duration must be > 0: %f", o.duration)
	}

	if o.rate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %d", o.rate)
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(o.rate)), core.WithChannels(o.channels)},
		signal.WithSeed(o.seed),
	)

	data, err := gen.Render(kind, o.oscFreq, defaultOscAmp, int(o.duration*float64(o.rate)))
	if err != nil {
		return nil, err
	}

	return &wavio.Clip{SampleRate: o.rate, BitDepth: o.bits, Data: data}, nil
}

// analyze measures the wet path with the LFO parked at the base cutoff.
func analyze(w io.Writer, o *options, store *params.Store, sampleRate float64) error {
	static := store.Snapshot()
	static.Depth = 0
	static.Mix = 1

	probe := params.NewStore()
	probe.Replace(static)

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(o.blockSize),
		core.WithChannels(1),
	)

	engine, err := o.settings.NewEngine(probe, nil, cfg)
	if err != nil {
		return err
	}

	stream, err := host.NewStream(engine, 1, o.blockSize)
	if err != nil {
		return err
	}

	impulse, err := signal.NewGenerator(core.WithSampleRate(sampleRate), core.WithChannels(1)).
		Impulse(1, analysisLength, 0)
	if err != nil {
		return err
	}

	// Mono interleaved is the channel itself.
	if err := stream.ProcessInterleaved(impulse[0]); err != nil {
		return err
	}

	m, err := ir.NewAnalyzer(sampleRate).Analyze(impulse[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Filter:      %s at %.1f Hz, Q %.2f\n", static.FilterType, static.CutoffHz, static.Q)
	fmt.Fprintf(w, "Peak:        %.6f at sample %d\n", m.PeakValue, m.PeakIndex)
	fmt.Fprintf(w, "Energy:      %.6f\n", m.Energy)
	fmt.Fprintf(w, "-3 dB point: %.1f Hz\n", m.CutoffHz)
	fmt.Fprintf(w, "Decay -60dB: %.4f s\n", m.DecayTime)
	fmt.Fprintf(w, "Tail:        %.4f s\n", m.TailLength)

	return nil
}
