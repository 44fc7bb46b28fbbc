package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=2
}

func ExampleWrap01() {
	fmt.Println(core.Wrap01(1.25), core.Wrap01(-0.25), core.Wrap01(0.5))

	// Output:
	// 0.25 0.75 0.5
}
