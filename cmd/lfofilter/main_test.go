package main

import (
	"bytes"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lfofilter/host"
	"github.com/cwbudde/algo-lfofilter/internal/cli"
	"github.com/cwbudde/algo-lfofilter/internal/wavio"
)

func TestRunOscillatorToWAV(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.wav")

	err := run([]string{"-duration", "0.1", "-sr", "8000", "-osc", "sine", "-osc-freq", "200", out}, io.Discard, io.Discard)
	require.NoError(t, err)

	clip, err := wavio.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 8000, clip.SampleRate)
	assert.Equal(t, 2, clip.Channels())
	assert.Equal(t, 800, clip.Frames())
}

func TestRunMixZeroPassesInputThrough(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	src := &wavio.Clip{
		SampleRate: 44100,
		BitDepth:   16,
		Data:       [][]float64{{0.5, -0.25, 0.125, 0, 0.75}},
	}
	require.NoError(t, wavio.WriteFile(in, src))

	require.NoError(t, run([]string{"-mix", "0", "-block", "2", in, out}, io.Discard, io.Discard))

	got, err := wavio.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, 1, got.Channels())
	assert.InDeltaSlice(t, src.Data[0], got.Data[0], 1e-9)
}

func TestRunAnalyzeAndPreset(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.wav")
	preset := filepath.Join(dir, "preset.json")

	var stdout bytes.Buffer
	err := run([]string{
		"-analyze", "-save-preset", preset,
		"-cutoff", "1000", "-duration", "0.05", "-sr", "48000",
		out,
	}, &stdout, io.Discard)
	require.NoError(t, err)

	report := stdout.String()
	assert.Contains(t, report, "Filter:      Lowpass at 1000.0 Hz")
	assert.Contains(t, report, "-3 dB point: ")

	state, err := cli.LoadPreset(preset)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, state["frequency"])
}

func TestRunVerboseLogs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	var stderr bytes.Buffer

	require.NoError(t, run([]string{"-v", "-duration", "0.01", out}, io.Discard, &stderr))
	assert.Contains(t, stderr.String(), "CPU: ")
	assert.Contains(t, stderr.String(), "Output: "+out)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.wav")

	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"too many files", []string{"a.wav", "b.wav", "c.wav"}},
		{"bad oscillator", []string{"-osc", "square", out}},
		{"bad channels", []string{"-channels", "3", out}},
		{"bad duration", []string{"-duration", "0", out}},
		{"bad bits", []string{"-bits", "8", "-duration", "0.01", out}},
		{"bad waveform", []string{"-waveform", "wobble", out}},
		{"missing input", []string{filepath.Join(dir, "missing.wav"), out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(tt.args, io.Discard, io.Discard))
		})
	}
}

func TestRenderRejectsWideInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quad.wav")
	out := filepath.Join(dir, "out.wav")

	quad := &wavio.Clip{SampleRate: 8000, BitDepth: 16, Data: [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}}}
	require.NoError(t, wavio.WriteFile(in, quad))

	err := run([]string{in, out}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, host.ErrUnsupportedLayout)
}

func TestRunNormalize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")

	err := run([]string{"-normalize", "0.5", "-duration", "0.05", "-sr", "8000", "-osc", "noise", "-bits", "24", out}, io.Discard, io.Discard)
	require.NoError(t, err)

	clip, err := wavio.ReadFile(out)
	require.NoError(t, err)

	peak := 0.0
	for _, ch := range clip.Data {
		for _, v := range ch {
			peak = max(peak, math.Abs(v))
		}
	}
	assert.InDelta(t, 0.5, peak, 1e-4)
}
