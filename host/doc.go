// Package host adapts the LFO filter engine to the outside world: tempo
// sources, channel-layout negotiation and interleaved stream I/O for audio
// devices and files.
package host
