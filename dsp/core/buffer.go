package core

// EnsureLen returns a slice of length n, reusing buf's backing array when
// it is large enough. Contents are not cleared.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// EnsurePlanar returns a buffer of channels slices, each of length n,
// reusing the storage of buf where possible.
func EnsurePlanar(buf [][]float64, channels, n int) [][]float64 {
	if channels < 0 {
		channels = 0
	}
	if cap(buf) >= channels {
		buf = buf[:channels]
	} else {
		grown := make([][]float64, channels)
		copy(grown, buf)
		buf = grown
	}
	for ch := range buf {
		buf[ch] = EnsureLen(buf[ch], n)
	}
	return buf
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// ZeroPlanar clears every channel of buf.
func ZeroPlanar(buf [][]float64) {
	for _, ch := range buf {
		clear(ch)
	}
}
