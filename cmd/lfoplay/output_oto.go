//go:build !headless

package main

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// deviceOutput plays a float32 little-endian reader on the default device.
type deviceOutput struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mu      sync.Mutex
}

func newDeviceOutput(sampleRate, channels int, buffer time.Duration, src io.Reader) (*deviceOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &deviceOutput{ctx: ctx, player: ctx.NewPlayer(src)}, nil
}

func (d *deviceOutput) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started && d.player != nil {
		d.player.Play()
		d.started = true
	}
}

func (d *deviceOutput) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player != nil {
		if err := d.player.Err(); err != nil {
			return err
		}
	}

	return d.ctx.Err()
}

func (d *deviceOutput) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.player != nil {
		_ = d.player.Close()
		d.player = nil
	}
	d.started = false
}
