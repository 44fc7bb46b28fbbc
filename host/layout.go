package host

import "github.com/cwbudde/algo-lfofilter/dsp/core"

// Layout is a proposed bus configuration.
type Layout struct {
	Inputs  int
	Outputs int
}

// SupportsLayout accepts mono or stereo buses whose output channel set
// matches the input.
func SupportsLayout(l Layout) bool {
	if l.Inputs != l.Outputs {
		return false
	}

	return l.Inputs >= 1 && l.Inputs <= core.MaxChannels
}
