package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
	"github.com/cwbudde/algo-lfofilter/dsp/signal"
)

func ExampleGenerator_Render() {
	g := signal.NewGenerator(core.WithSampleRate(1000), core.WithChannels(2))
	buf, err := g.Render(signal.KindSaw, 250, 1, 4)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(buf), buf[0], buf[1])

	// Output:
	// 2 [-1 -0.5 0 0.5] [-1 -0.5 0 0.5]
}

func ExampleNormalizePlanar() {
	buf := [][]float64{{-0.5, 0.25}, {0.1, 0.2}}
	if err := signal.NormalizePlanar(buf, 0.8); err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f | %.2f %.2f\n", buf[0][0], buf[0][1], buf[1][0], buf[1][1])

	// Output:
	// -0.80 0.40 | 0.16 0.32
}
