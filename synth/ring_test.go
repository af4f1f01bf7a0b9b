package synth

import (
	"io"
	"testing"
	"time"
)

func TestRingSizingLaw(t *testing.T) {
	stereo16 := Format{BitDepth: 16, Channels: 2} // 4 byte frames, lcm(3, 4) = 12
	stereo32 := Format{BitDepth: 32, Channels: 2} // 8 byte frames, lcm(3, 8) = 24

	valid := []struct {
		size   int
		format Format
	}{
		{2052, stereo16},
		{4092, stereo16},
		{12, stereo16},
		{4080, stereo32},
		{8184, stereo32}, // exactly at the descriptor limit
	}
	for _, tc := range valid {
		if _, err := NewHardwareRingBuffer(tc.size, tc.format, 44100); err != nil {
			t.Errorf("size %d (%d bit) should validate: %v", tc.size, tc.format.BitDepth, err)
		}
	}

	invalid := []struct {
		size   int
		format Format
	}{
		{1024, stereo16},
		{4096, stereo16},
		{0, stereo16},
		{-12, stereo16},
		{4092, stereo32}, // multiple of 12 but not of 24
		{8208, stereo32}, // aligned but past the descriptor limit
	}
	for _, tc := range invalid {
		if _, err := NewHardwareRingBuffer(tc.size, tc.format, 44100); err == nil {
			t.Errorf("size %d (%d bit) should be rejected", tc.size, tc.format.BitDepth)
		}
	}
}

func TestRingWindowSize(t *testing.T) {
	format := Format{BitDepth: 16, Channels: 2}
	ring, err := NewHardwareRingBuffer(2052, format, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 684, ring.WindowSize(); want != got {
		t.Errorf("want window size %d, got %d", want, got)
	}
	if ring.WindowSize()%format.FrameSize() != 0 {
		t.Errorf("window size %d is not frame aligned", ring.WindowSize())
	}
}

func TestRingPushRead(t *testing.T) {
	ring, err := NewHardwareRingBuffer(24, Format{BitDepth: 16, Channels: 2}, 44100)
	if err != nil {
		t.Fatal(err)
	}

	next := byte(0)
	fill := func(window []byte) int {
		for i := range window {
			window[i] = next
			next++
		}
		return len(window)
	}

	// Fill all three descriptors, drain them, then go around again: bytes
	// must come back in exactly the order they were committed, across the
	// wrap point.
	ring.Prime(fill)

	var got []byte
	buf := make([]byte, 5) // deliberately not window aligned
	for len(got) < 24 {
		n, err := ring.Read(buf)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, buf[:n]...)
	}
	for i := 0; i < descriptorCount; i++ {
		ring.Push(fill)
	}
	for len(got) < 48 {
		n, err := ring.Read(buf)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, buf[:n]...)
	}
	for i, b := range got[:48] {
		if byte(i) != b {
			t.Fatalf("byte %d: want %d, got %d", i, i, b)
		}
	}
}

func TestRingUnderrunSilence(t *testing.T) {
	ring, err := NewHardwareRingBuffer(24, Format{BitDepth: 16, Channels: 2}, 44100)
	if err != nil {
		t.Fatal(err)
	}
	buf := []byte{1, 2, 3, 4}
	n, err := ring.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 4, n; want != got {
		t.Fatalf("want %d silent bytes, got %d", want, got)
	}
	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte %d not silence: %d", i, b)
		}
	}
	if want, got := uint64(1), ring.Stats().Underruns; want != got {
		t.Errorf("want %d underrun, got %d", want, got)
	}
}

func TestRingCloseDrainsToEOF(t *testing.T) {
	ring, err := NewHardwareRingBuffer(24, Format{BitDepth: 16, Channels: 2}, 44100)
	if err != nil {
		t.Fatal(err)
	}
	ring.Push(func(w []byte) int {
		for i := range w {
			w[i] = 0xff
		}
		return len(w)
	})
	ring.Close()

	if n := ring.Push(func(w []byte) int { return len(w) }); n != 0 {
		t.Errorf("push after close committed %d bytes", n)
	}

	buf := make([]byte, 64)
	n, err := ring.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 8, n; want != got {
		t.Errorf("want the committed %d bytes before eof, got %d", want, got)
	}
	if _, err := ring.Read(buf); err != io.EOF {
		t.Errorf("want io.EOF after drain, got %v", err)
	}
}

func TestRingDeadlineMiss(t *testing.T) {
	ring, err := NewHardwareRingBuffer(2052, Format{BitDepth: 16, Channels: 2}, 44100)
	if err != nil {
		t.Fatal(err)
	}
	// One window is 171 frames ~ 3.9ms of playback; a fill that takes ten
	// times that has lost the race.
	ring.Push(func(w []byte) int {
		time.Sleep(40 * time.Millisecond)
		return len(w)
	})
	if want, got := uint64(1), ring.Stats().DeadlineMisses; want != got {
		t.Errorf("want %d deadline miss, got %d", want, got)
	}

	ring.Push(func(w []byte) int { return len(w) })
	if want, got := uint64(1), ring.Stats().DeadlineMisses; want != got {
		t.Errorf("fast fill counted as miss: want %d, got %d", want, got)
	}
}
