package synth

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// descriptorCount is the number of transfer descriptors a small circular
// buffer is physically split into.
const descriptorCount = 3

// smallBufferThreshold is the largest total size the 3-descriptor split
// supports. Beyond it the hardware switches splitting strategy and the
// sizing law below no longer holds uniformly, so such sizes are refused.
const smallBufferThreshold = 8184

// HardwareRingBuffer models the DAC's circular transfer memory: a byte arena
// split into descriptorCount contiguous descriptors. The render context
// fills one descriptor-sized window at a time through Push; the playback
// backend consumes committed bytes through Read, standing in for the
// transfer hardware. Neither side ever touches memory owned by the other:
// the render context writes only into the window it was granted, the reader
// only consumes bytes already committed.
type HardwareRingBuffer struct {
	arena      []byte
	descLen    int
	format     Format
	sampleRate int

	mu       sync.Mutex
	cond     *sync.Cond
	readPos  uint64 // bytes consumed by the backend
	writePos uint64 // bytes committed by the render context
	closed   bool

	windows        atomic.Uint64
	bytesStreamed  atomic.Uint64
	underruns      atomic.Uint64
	deadlineMisses atomic.Uint64
}

// NewHardwareRingBuffer validates the sizing contract and allocates the
// arena. The total length must split into descriptorCount descriptors that
// each hold a whole number of frames, which combines into
// total % lcm(descriptorCount, frameSize) == 0. A non-conforming size would
// surface later as unprocessable partial-frame windows, so it is rejected
// here, before playback can ever start.
func NewHardwareRingBuffer(total int, format Format, sampleRate int) (*HardwareRingBuffer, error) {
	frameSize := format.FrameSize()
	if frameSize <= 0 {
		return nil, fmt.Errorf("ring: unsupported format: %d bit, %d channels", format.BitDepth, format.Channels)
	}
	if sampleRate < 1 {
		return nil, fmt.Errorf("ring: invalid sample rate %d", sampleRate)
	}
	if total <= 0 {
		return nil, fmt.Errorf("ring: buffer size must be positive, got %d", total)
	}
	if total > smallBufferThreshold {
		return nil, fmt.Errorf("ring: buffer size %d exceeds the %d byte descriptor limit", total, smallBufferThreshold)
	}
	if align := lcm(descriptorCount, frameSize); total%align != 0 {
		return nil, fmt.Errorf("ring: buffer size %d is not a multiple of lcm(%d, %d) = %d",
			total, descriptorCount, frameSize, align)
	}
	r := &HardwareRingBuffer{
		arena:      make([]byte, total),
		descLen:    total / descriptorCount,
		format:     format,
		sampleRate: sampleRate,
	}
	r.cond = sync.NewCond(&r.mu)
	return r, nil
}

// WindowSize returns the length in bytes of one refill window (one
// descriptor).
func (r *HardwareRingBuffer) WindowSize() int {
	return r.descLen
}

// Push waits until a whole descriptor is free, hands it to fill, and commits
// exactly the bytes fill reports - never more. The wait for a free window is
// the render context's only suspension point. Push returns 0 once the ring
// is closed.
//
// A fill that takes longer than the window's playback duration has already
// lost the race against the DAC; it is counted as a deadline miss but not
// treated as an error.
func (r *HardwareRingBuffer) Push(fill func(window []byte) int) int {
	r.mu.Lock()
	for !r.closed && r.writePos+uint64(r.descLen)-r.readPos > uint64(len(r.arena)) {
		r.cond.Wait()
	}
	if r.closed {
		r.mu.Unlock()
		return 0
	}
	start := int(r.writePos % uint64(len(r.arena)))
	r.mu.Unlock()

	// a partial commit leaves the write cursor off descriptor alignment,
	// so the next window may be cut short by the end of the arena
	window := r.arena[start:]
	if len(window) > r.descLen {
		window = window[:r.descLen]
	}
	began := time.Now()
	n := fill(window)
	elapsed := time.Since(began)

	if n < 0 {
		n = 0
	}
	if n > len(window) {
		n = len(window)
	}
	frames := n / r.format.FrameSize()
	budget := time.Duration(frames) * time.Second / time.Duration(r.sampleRate)
	if frames > 0 && elapsed > budget {
		r.deadlineMisses.Add(1)
	}

	r.mu.Lock()
	r.writePos += uint64(n)
	r.mu.Unlock()
	r.cond.Broadcast()
	r.windows.Add(1)
	return n
}

// Prime fills the entire arena with rendered frames so the first transfer
// cycle never plays stale memory. Must be called before the backend starts.
func (r *HardwareRingBuffer) Prime(fill func(window []byte) int) {
	for i := 0; i < descriptorCount; i++ {
		r.Push(fill)
	}
}

// Read implements the transfer-hardware side: committed bytes are consumed
// in ring order. When the ring has run dry, Read fills p with silence and
// records an underrun instead of blocking - late samples are useless to a
// DAC. Read returns io.EOF only after Close, once every committed byte has
// been drained.
func (r *HardwareRingBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	avail := int(r.writePos - r.readPos)
	if avail == 0 {
		closed := r.closed
		r.mu.Unlock()
		if closed {
			return 0, io.EOF
		}
		for i := range p {
			p[i] = 0
		}
		r.underruns.Add(1)
		return len(p), nil
	}
	n := r.consumeLocked(p, avail)
	r.mu.Unlock()
	r.cond.Broadcast()
	return n, nil
}

// ReadFull is the patient variant of Read for consumers without a realtime
// deadline: instead of substituting silence it waits for committed bytes,
// filling p completely unless the ring is closed first.
func (r *HardwareRingBuffer) ReadFull(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		r.mu.Lock()
		for !r.closed && r.writePos == r.readPos {
			r.cond.Wait()
		}
		avail := int(r.writePos - r.readPos)
		if avail == 0 {
			r.mu.Unlock()
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}
		total += r.consumeLocked(p[total:], avail)
		r.mu.Unlock()
		r.cond.Broadcast()
	}
	return total, nil
}

// consumeLocked copies up to avail committed bytes into p and advances the
// read cursor. Caller holds r.mu.
func (r *HardwareRingBuffer) consumeLocked(p []byte, avail int) int {
	n := avail
	if n > len(p) {
		n = len(p)
	}
	start := int(r.readPos % uint64(len(r.arena)))
	c := copy(p[:n], r.arena[start:])
	if c < n {
		copy(p[c:n], r.arena[:n-c])
	}
	r.readPos += uint64(n)
	r.bytesStreamed.Add(uint64(n))
	return n
}

// Close wakes both sides; Push returns 0 and Read reports io.EOF once
// drained.
func (r *HardwareRingBuffer) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cond.Broadcast()
}

// RingStats are playback health counters, readable from any goroutine.
type RingStats struct {
	Windows        uint64 // refill windows granted and committed
	BytesStreamed  uint64 // bytes consumed by the backend
	Underruns      uint64 // reads that found the ring empty
	DeadlineMisses uint64 // fills slower than their window's playback time
}

func (r *HardwareRingBuffer) Stats() RingStats {
	return RingStats{
		Windows:        r.windows.Load(),
		BytesStreamed:  r.bytesStreamed.Load(),
		Underruns:      r.underruns.Load(),
		DeadlineMisses: r.deadlineMisses.Load(),
	}
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
