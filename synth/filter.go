package synth

import "math"

// Effect processes one interleaved stereo block in place. The effect chain
// is assembled at configuration time and runs after voice mixing.
type Effect interface {
	Process(buf []float64)
}

const (
	minCutoff = 20.0
	maxCutoff = 20000.0
)

// Lowpass is a biquad lowpass over interleaved stereo, based on
// https://www.w3.org/2011/audio/audio-eq-cookbook.html. Coefficients are
// recomputed only when the cutoff changes, never per sample.
type Lowpass struct {
	sampleRate float64
	cutoff     float64

	b0, b1, b2, a1, a2 float64

	left  biquadState
	right biquadState
}

type biquadState struct {
	y1, y2 float64
}

func NewLowpass(sampleRate, cutoff float64) *Lowpass {
	f := &Lowpass{sampleRate: sampleRate}
	f.SetCutoff(cutoff)
	return f
}

// SetCutoff clamps freq into the audible range and recomputes coefficients.
func (f *Lowpass) SetCutoff(freq float64) {
	f.cutoff = clamp(freq, minCutoff, maxCutoff)

	omega := 2 * math.Pi * f.cutoff / f.sampleRate
	cos := math.Cos(omega)
	sin := math.Sin(omega)

	const q = 1
	alpha := sin / (2. * q)

	b0 := (1 - cos) / 2
	b1 := 1 - cos
	b2 := b0
	a0 := 1 + alpha

	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = (-2 * cos) / a0
	f.a2 = (1 - alpha) / a0
}

func (f *Lowpass) Cutoff() float64 {
	return f.cutoff
}

func (f *Lowpass) Process(buf []float64) {
	for n := 0; n+1 < len(buf); n += 2 {
		buf[n] = f.left.tick(f, buf[n])
		buf[n+1] = f.right.tick(f, buf[n+1])
	}
}

func (s *biquadState) tick(f *Lowpass, in float64) float64 {
	out := f.b0*in + s.y1
	s.y1 = f.b1*in - f.a1*out + s.y2
	s.y2 = f.b2*in - f.a2*out
	return out
}
