//go:build !cgo

package synth

import "fmt"

func newPortAudioSink(ring *HardwareRingBuffer, cfg Config) (Sink, error) {
	return nil, fmt.Errorf("portaudio backend requires a cgo build")
}
