// Command lfoscope renders the LFO waveform preview to a PNG image.
//
// Usage:
//
//	lfoscope [flags] output.png
//
// Examples:
//
//	lfoscope -waveform triangle tri.png
//	lfoscope -waveform random -width 800 -height 200 random.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/cwbudde/algo-lfofilter/dsp/lfo"
)

var (
	background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	axis       = color.RGBA{R: 0x50, G: 0x50, B: 0x5a, A: 0xff}
	trace      = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("lfoscope", flag.ContinueOnError)
	fs.SetOutput(stderr)

	waveform := fs.String("waveform", "Sine", "LFO waveform to draw")
	width := fs.Int("width", 400, "image width in pixels")
	height := fs.Int("height", 120, "image height in pixels")
	stroke := fs.Float64("stroke", 2, "trace thickness in pixels")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lfoscope [flags] output.png\n\n")
		fmt.Fprintf(stderr, "Draws one cycle of the LFO waveform preview.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected output.png")
	}

	w, err := lfo.ParseWaveform(*waveform)
	if err != nil {
		return err
	}

	img, err := render(w, *width, *height, *stroke)
	if err != nil {
		return err
	}

	f, err := os.Create(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}

	return f.Close()
}

// render draws one cycle of the preview curve, one sample per pixel column.
func render(w lfo.Waveform, width, height int, stroke float64) (*image.RGBA, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("image size must be at least 2x2: %dx%d", width, height)
	}

	if stroke <= 0 || math.IsNaN(stroke) {
		return nil, fmt.Errorf("stroke must be > 0: %f", stroke)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	mid := lfo.DisplayY(0, float64(height))
	z := vector.NewRasterizer(width, height)
	addSegment(z, 0, mid, float64(width), mid, 0.5)
	z.Draw(img, img.Bounds(), image.NewUniform(axis), image.Point{})

	curve := lfo.DisplayCurve(make([]float64, width), w)
	z.Reset(width, height)
	prevX, prevY := 0.0, lfo.DisplayY(curve[0], float64(height))
	for x := 1; x < width; x++ {
		y := lfo.DisplayY(curve[x], float64(height))
		addSegment(z, prevX, prevY, float64(x), y, stroke/2)
		prevX, prevY = float64(x), y
	}
	z.Draw(img, img.Bounds(), image.NewUniform(trace), image.Point{})

	return img, nil
}

// addSegment adds a filled quad of half-width hw around the line (x0,y0)-(x1,y1).
func addSegment(z *vector.Rasterizer, x0, y0, x1, y1, hw float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}

	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
}
