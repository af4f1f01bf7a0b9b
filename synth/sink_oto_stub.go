//go:build !cgo

package synth

import "fmt"

func newOtoSink(ring *HardwareRingBuffer, cfg Config) (Sink, error) {
	return nil, fmt.Errorf("oto backend requires a cgo build")
}
