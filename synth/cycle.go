package synth

import "sync/atomic"

// Cycle is the render context's per-window routine: drain every pending
// control message, render exactly as many frames as the window holds, pack
// them into the wire format, and report the bytes written.
type Cycle struct {
	engine *Engine
	recv   *Receiver
	format Format
	mix    []float64 // scratch for one window of interleaved stereo

	status atomic.Pointer[Snapshot]
}

// NewCycle wires an engine to the consumer end of a control channel.
// maxWindow is the largest window Fill will be handed, in bytes.
func NewCycle(engine *Engine, recv *Receiver, format Format, maxWindow int) *Cycle {
	c := &Cycle{
		engine: engine,
		recv:   recv,
		format: format,
		mix:    make([]float64, 2*(maxWindow/format.FrameSize())),
	}
	c.status.Store(engine.snapshot())
	return c
}

// Fill implements the window contract: every message enqueued before this
// call is applied, in FIFO order, before any sample is rendered, so each
// window reflects all control input that preceded it. Remainder bytes past
// the last whole frame are left untouched and never reported as consumed.
func (c *Cycle) Fill(window []byte) int {
	applied := false
	for {
		msg, ok := c.recv.Pop()
		if !ok {
			break
		}
		c.engine.ProcessMessage(msg)
		applied = true
	}
	if applied {
		// Publishing a snapshot allocates, but only on control traffic,
		// never in the steady-state render path.
		c.status.Store(c.engine.snapshot())
	}

	frameSize := c.format.FrameSize()
	frames := len(window) / frameSize
	if frames == 0 {
		return 0
	}
	if max := len(c.mix) / 2; frames > max {
		frames = max
	}
	c.engine.Render(frames, c.mix)
	for i := 0; i < frames; i++ {
		c.format.packFrame(window[i*frameSize:], c.mix[2*i], c.mix[2*i+1])
	}
	return frames * frameSize
}

// Status returns the most recent engine snapshot. Safe from any goroutine.
func (c *Cycle) Status() *Snapshot {
	return c.status.Load()
}

// Run refills ring windows until the ring is closed. The ring should be
// primed with c.Fill before playback starts.
func (c *Cycle) Run(ring *HardwareRingBuffer) {
	for ring.Push(c.Fill) > 0 {
	}
}
