package synth

import "encoding/binary"

// Format describes the wire format of one output frame.
type Format struct {
	BitDepth int // bits per sample slot: 16 or 32
	Channels int // physical output channels
}

// FrameSize returns the number of bytes one frame occupies.
func (f Format) FrameSize() int {
	return f.Channels * f.BitDepth / 8
}

// packFrame writes one stereo sample pair into dst: little endian, one word
// per channel, the 16 bit payload left-justified into the most significant
// bits of the slot. Inputs are clamped first so effect overshoot can never
// wrap the integer conversion.
func (f Format) packFrame(dst []byte, left, right float64) {
	switch f.BitDepth {
	case 16:
		binary.LittleEndian.PutUint16(dst[0:2], uint16(sampleToInt16(left)))
		binary.LittleEndian.PutUint16(dst[2:4], uint16(sampleToInt16(right)))
	case 32:
		binary.LittleEndian.PutUint32(dst[0:4], uint32(int32(sampleToInt16(left))<<16))
		binary.LittleEndian.PutUint32(dst[4:8], uint32(int32(sampleToInt16(right))<<16))
	}
}

func sampleToInt16(s float64) int16 {
	s = clamp(s, -1, 1)
	return int16(s * 32767)
}
