package synth

import "sync/atomic"

// controlChannel is a lock-free spsc queue of control messages. It is only
// reachable through the Sender/Receiver pair handed out at construction, so
// the single-producer/single-consumer discipline is enforced by ownership
// rather than runtime checks.
type controlChannel struct {
	messages    []Message
	read, write atomic.Uint32
}

// NewControlChannel returns the two ends of a channel with room for at least
// size messages. Capacity is rounded up to a power of two so the cursors can
// wrap for free.
func NewControlChannel(size int) (*Sender, *Receiver) {
	if size < 1 {
		size = 1
	}
	capacity := 1
	for capacity < size {
		capacity <<= 1
	}
	ch := &controlChannel{messages: make([]Message, capacity)}
	return &Sender{ch: ch}, &Receiver{ch: ch}
}

// Sender is the producer end. Exactly one goroutine may use it at a time.
type Sender struct {
	ch *controlChannel
}

// Push enqueues msg and reports whether it fit. A full channel drops the
// message rather than block; the producer decides whether losing a stale
// update matters.
func (s *Sender) Push(msg Message) bool {
	ch := s.ch
	write := ch.write.Load()
	if write-ch.read.Load() == uint32(len(ch.messages)) {
		return false
	}
	ch.messages[write%uint32(len(ch.messages))] = msg
	ch.write.Store(write + 1)
	return true
}

// Receiver is the consumer end, owned by the render context.
type Receiver struct {
	ch *controlChannel
}

// Pop returns the oldest unread message in FIFO order, or ok == false when
// the channel is empty. It never blocks.
func (r *Receiver) Pop() (msg Message, ok bool) {
	ch := r.ch
	read := ch.read.Load()
	if read == ch.write.Load() {
		return Message{}, false
	}
	msg = ch.messages[read%uint32(len(ch.messages))]
	ch.read.Store(read + 1)
	return msg, true
}
