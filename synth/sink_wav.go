package synth

import (
	"encoding/binary"
	"fmt"
	"os"

	wav "github.com/youpy/go-wav"
)

// WAVSink streams the ring into a RIFF/WAVE file instead of a DAC. Offline
// rendering goes through the exact same prime/window/pack path as live
// playback; only the consumer differs. 16 bit only, matching what the wav
// writer encodes.
type WAVSink struct {
	ring   *HardwareRingBuffer
	cfg    Config
	path   string
	frames int
}

func NewWAVSink(ring *HardwareRingBuffer, cfg Config, path string, seconds float64) (*WAVSink, error) {
	if cfg.BitDepth != 16 {
		return nil, fmt.Errorf("wav export requires 16 bit output, got %d", cfg.BitDepth)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("wav export duration must be positive, got %v", seconds)
	}
	return &WAVSink{
		ring:   ring,
		cfg:    cfg,
		path:   path,
		frames: int(seconds * float64(cfg.SampleRate)),
	}, nil
}

// Write consumes the configured duration from the ring and encodes it.
func (s *WAVSink) Write() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := wav.NewWriter(f, uint32(s.frames), 2, uint32(s.cfg.SampleRate), uint16(s.cfg.BitDepth))

	frameSize := s.cfg.Format().FrameSize()
	buf := make([]byte, s.ring.WindowSize())
	samples := make([]wav.Sample, len(buf)/frameSize)

	remaining := s.frames * frameSize
	for remaining > 0 {
		n := len(buf)
		if n > remaining {
			n = remaining
		}
		m, err := s.ring.ReadFull(buf[:n])
		if err != nil {
			return err
		}
		m -= m % frameSize
		if m == 0 {
			continue
		}
		count := m / frameSize
		for i := 0; i < count; i++ {
			samples[i].Values[0] = int(int16(binary.LittleEndian.Uint16(buf[i*frameSize:])))
			samples[i].Values[1] = int(int16(binary.LittleEndian.Uint16(buf[i*frameSize+2:])))
		}
		if err := writer.WriteSamples(samples[:count]); err != nil {
			return err
		}
		remaining -= m
	}
	return nil
}
