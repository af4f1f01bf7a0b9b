//go:build cgo

package synth

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoSink plays the ring through oto, which pulls bytes straight from the
// ring's Read side. Only 16 bit output is supported; oto has no packed
// 32 bit integer format.
type otoSink struct {
	ctx    *oto.Context
	player *oto.Player
}

func newOtoSink(ring *HardwareRingBuffer, cfg Config) (Sink, error) {
	if cfg.BitDepth != 16 {
		return nil, fmt.Errorf("oto backend requires 16 bit output, got %d", cfg.BitDepth)
	}
	frames := ring.WindowSize() / cfg.Format().FrameSize()
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(frames) * time.Second / time.Duration(cfg.SampleRate),
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready
	return &otoSink{ctx: ctx, player: ctx.NewPlayer(ring)}, nil
}

func (s *otoSink) Start() error {
	s.player.Play()
	return nil
}

func (s *otoSink) Stop() error {
	return s.player.Close()
}
