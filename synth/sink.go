package synth

import "fmt"

// Sink is a playback backend. It consumes the ring's committed bytes the way
// the transfer hardware would; which backend runs is decided at startup.
type Sink interface {
	Start() error
	Stop() error
}

// NewSink selects a live playback backend by name.
func NewSink(backend string, ring *HardwareRingBuffer, cfg Config) (Sink, error) {
	switch backend {
	case "portaudio":
		return newPortAudioSink(ring, cfg)
	case "oto":
		return newOtoSink(ring, cfg)
	default:
		return nil, fmt.Errorf("unknown audio backend: %s", backend)
	}
}
