package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

const bytesPerFloat32 = 4

// ErrUnsupportedLayout is returned for channel counts SupportsLayout rejects.
var ErrUnsupportedLayout = errors.New("host: unsupported channel layout")

// Processor is a planar in-place block processor.
type Processor interface {
	Process(buf [][]float64) error
}

// InputFunc fills one planar input block. Every channel slice has the same
// length.
type InputFunc func(dst [][]float64)

// Stream drives a Processor in fixed blocks and converts between its planar
// buffers and interleaved samples.
//
// Read may run on an audio-device goroutine while SetInput is called from
// elsewhere. A block whose processing fails is replaced by silence and
// counted; the stream itself keeps running.
type Stream struct {
	proc      Processor
	channels  int
	blockSize int

	input atomic.Pointer[InputFunc]

	planar  [][]float64
	view    [][]float64
	inter   []float64
	pending []byte
	encoded []byte

	failures atomic.Uint64
}

// NewStream creates a stream with the given channel count and block size.
func NewStream(proc Processor, channels, blockSize int) (*Stream, error) {
	if proc == nil {
		return nil, errors.New("stream processor must not be nil")
	}

	if !SupportsLayout(Layout{Inputs: channels, Outputs: channels}) {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, channels)
	}

	if blockSize <= 0 {
		return nil, fmt.Errorf("stream block size must be > 0: %d", blockSize)
	}

	s := &Stream{
		proc:      proc,
		channels:  channels,
		blockSize: blockSize,
		planar:    core.EnsurePlanar(nil, channels, blockSize),
		view:      make([][]float64, channels),
		inter:     make([]float64, channels*blockSize),
		encoded:   make([]byte, channels*blockSize*bytesPerFloat32),
	}

	return s, nil
}

// Channels returns the interleaved channel count.
func (s *Stream) Channels() int { return s.channels }

// BlockSize returns the processing block length in frames.
func (s *Stream) BlockSize() int { return s.blockSize }

// Failures returns how many blocks were replaced by silence.
func (s *Stream) Failures() uint64 { return s.failures.Load() }

// SetInput swaps the block source used by Read. A nil fn feeds silence.
func (s *Stream) SetInput(fn InputFunc) {
	if fn == nil {
		s.input.Store(nil)
		return
	}

	s.input.Store(&fn)
}

// Read renders interleaved little-endian float32 frames into p, as expected
// by audio devices. It always fills p completely. Read and
// ProcessInterleaved must not run concurrently.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.renderBlock()
			s.pending = s.encoded
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	return n, nil
}

// ProcessInterleaved runs the processor over interleaved samples in place.
// A trailing partial block is processed as a shorter block.
func (s *Stream) ProcessInterleaved(buf []float64) error {
	if len(buf)%s.channels != 0 {
		return fmt.Errorf("interleaved buffer length %d is not a multiple of %d channels", len(buf), s.channels)
	}

	frames := len(buf) / s.channels
	for start := 0; start < frames; start += s.blockSize {
		n := min(s.blockSize, frames-start)
		chunk := buf[start*s.channels : (start+n)*s.channels]

		planar := s.deinterleave(chunk, n)
		if err := s.proc.Process(planar); err != nil {
			return fmt.Errorf("process frames %d-%d: %w", start, start+n, err)
		}

		s.interleave(chunk, planar, n)
	}

	return nil
}

func (s *Stream) renderBlock() {
	planar := s.planar
	if fn := s.input.Load(); fn != nil {
		(*fn)(planar)
	} else {
		core.ZeroPlanar(planar)
	}

	if err := s.proc.Process(planar); err != nil {
		s.failures.Add(1)
		core.ZeroPlanar(planar)
	}

	s.interleave(s.inter, planar, s.blockSize)

	for i, v := range s.inter {
		binary.LittleEndian.PutUint32(s.encoded[i*bytesPerFloat32:], math.Float32bits(float32(v)))
	}
}

func (s *Stream) deinterleave(src []float64, n int) [][]float64 {
	out := s.view
	for ch := range out {
		out[ch] = s.planar[ch][:n]
	}

	if s.channels == 1 {
		copy(out[0], src)
		return out
	}

	for i := range n {
		out[0][i] = src[2*i]
		out[1][i] = src[2*i+1]
	}

	return out
}

func (s *Stream) interleave(dst []float64, planar [][]float64, n int) {
	if s.channels == 1 {
		copy(dst[:n], planar[0][:n])
		return
	}

	f64.Interleave2(dst[:2*n], planar[0][:n], planar[1][:n])
}
