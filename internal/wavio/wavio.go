// Package wavio reads and writes PCM WAV files as planar float64 clips.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

var (
	ErrInvalidFile         = errors.New("wavio: not a valid WAV file")
	ErrUnsupportedBitDepth = errors.New("wavio: bit depth must be 16, 24 or 32")
	ErrEmptyClip           = errors.New("wavio: clip has no channels")
)

// Clip is decoded audio in planar layout. Samples are normalized to
// [-1, 1).
type Clip struct {
	SampleRate int
	BitDepth   int
	Data       [][]float64
}

// Channels returns the number of channels.
func (c *Clip) Channels() int { return len(c.Data) }

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Data) == 0 {
		return 0
	}
	return len(c.Data[0])
}

// Interleaved returns the clip samples in frame-interleaved order.
func (c *Clip) Interleaved() []float64 {
	channels := c.Channels()
	frames := c.Frames()
	out := make([]float64, frames*channels)
	for ch, data := range c.Data {
		for i, v := range data {
			out[i*channels+ch] = v
		}
	}
	return out
}

// FromInterleaved builds a clip from frame-interleaved samples. A trailing
// partial frame is dropped.
func FromInterleaved(samples []float64, channels, sampleRate, bitDepth int) (*Clip, error) {
	if channels <= 0 {
		return nil, ErrEmptyClip
	}
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	frames := len(samples) / channels
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
		for i := range frames {
			data[ch][i] = samples[i*channels+ch]
		}
	}

	return &Clip{SampleRate: sampleRate, BitDepth: bitDepth, Data: data}, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open input: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a complete PCM WAV stream.
func Read(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	bitDepth := int(dec.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, ErrEmptyClip
	}

	scale := 1 / fullScale(bitDepth)
	frames := len(buf.Data) / channels
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
		for i := range frames {
			data[ch][i] = float64(buf.Data[i*channels+ch]) * scale
		}
	}

	return &Clip{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
		Data:       data,
	}, nil
}

// WriteFile encodes clip to a new WAV file at path.
func WriteFile(path string, clip *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create output: %w", err)
	}

	if err := Write(f, clip); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Write encodes clip as PCM at clip.BitDepth. Samples outside [-1, 1] are
// clipped.
func Write(w io.WriteSeeker, clip *Clip) error {
	channels := clip.Channels()
	if channels == 0 {
		return ErrEmptyClip
	}
	if err := checkBitDepth(clip.BitDepth); err != nil {
		return err
	}

	peak := fullScale(clip.BitDepth)
	frames := clip.Frames()
	ints := make([]int, frames*channels)
	for ch, data := range clip.Data {
		for i := range frames {
			var v float64
			if i < len(data) {
				v = data[i]
			}
			ints[i*channels+ch] = quantize(v, peak)
		}
	}

	enc := wav.NewEncoder(w, clip.SampleRate, clip.BitDepth, channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: clip.SampleRate},
		Data:           ints,
		SourceBitDepth: clip.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

func checkBitDepth(bits int) error {
	switch bits {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
}

func fullScale(bits int) float64 {
	return math.Exp2(float64(bits - 1))
}

func quantize(v, peak float64) int {
	if math.IsNaN(v) {
		return 0
	}
	s := math.Round(v * peak)
	if s > peak-1 {
		s = peak - 1
	}
	if s < -peak {
		s = -peak
	}
	return int(s)
}
