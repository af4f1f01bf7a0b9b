//go:build cgo

package synth

import (
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// portAudioSink plays the ring through the default portaudio device. The
// callback size is matched to one descriptor so the device pulls in the same
// units the hardware model grants.
type portAudioSink struct {
	stream *portaudio.Stream
	ring   *HardwareRingBuffer
	buf    []byte
}

func newPortAudioSink(ring *HardwareRingBuffer, cfg Config) (Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	frameSize := cfg.Format().FrameSize()
	frames := ring.WindowSize() / frameSize
	s := &portAudioSink{
		ring: ring,
		buf:  make([]byte, frames*frameSize),
	}

	var (
		stream *portaudio.Stream
		err    error
	)
	switch cfg.BitDepth {
	case 16:
		stream, err = portaudio.OpenDefaultStream(0, 2, float64(cfg.SampleRate), frames, s.process16)
	case 32:
		stream, err = portaudio.OpenDefaultStream(0, 2, float64(cfg.SampleRate), frames, s.process32)
	default:
		err = fmt.Errorf("portaudio backend: unsupported bit depth %d", cfg.BitDepth)
	}
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *portAudioSink) Start() error {
	return s.stream.Start()
}

func (s *portAudioSink) Stop() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}

func (s *portAudioSink) process16(out []int16) {
	buf := s.buf[:len(out)*2]
	s.consume(buf)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
}

func (s *portAudioSink) process32(out []int32) {
	buf := s.buf[:len(out)*4]
	s.consume(buf)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[4*i:]))
	}
}

// consume drains exactly len(buf) bytes from the ring. The ring substitutes
// silence on underrun, so this terminates without ever stalling the
// callback; after Close the tail is zero-filled.
func (s *portAudioSink) consume(buf []byte) {
	for n := 0; n < len(buf); {
		m, err := s.ring.Read(buf[n:])
		if err != nil {
			for i := n; i < len(buf); i++ {
				buf[i] = 0
			}
			return
		}
		n += m
	}
}
