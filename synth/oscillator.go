package synth

import "math"

// wavetableSize must stay a power of two so index wrapping is a mask.
const (
	wavetableSize = 1024
	wavetableMask = wavetableSize - 1
)

var sineTable [wavetableSize]float64

func init() {
	for i := range sineTable {
		sineTable[i] = math.Sin(2 * math.Pi * float64(i) / wavetableSize)
	}
}

// Oscillator generates one channel of periodic signal from a phase
// accumulator. The phase lives in [0, 1) and advances by frequency/sampleRate
// each tick; the output is read from a shared sine wavetable with linear
// interpolation.
type Oscillator struct {
	phase      float64
	increment  float64
	sampleRate float64
}

func NewOscillator(frequency, sampleRate float64) Oscillator {
	return Oscillator{
		increment:  frequency / sampleRate,
		sampleRate: sampleRate,
	}
}

// SetFrequency recomputes the phase increment. The phase itself is left
// untouched so a frequency change never produces a click.
func (o *Oscillator) SetFrequency(freq float64) {
	o.increment = freq / o.sampleRate
}

// Frequency returns the current frequency in Hz.
func (o *Oscillator) Frequency() float64 {
	return o.increment * o.sampleRate
}

// Tick returns the signal value at the current phase and advances the phase
// one sample, wrapping back into [0, 1).
func (o *Oscillator) Tick() float64 {
	pos := o.phase * wavetableSize
	i := int(pos)
	frac := pos - float64(i)
	a := sineTable[i&wavetableMask]
	b := sineTable[(i+1)&wavetableMask]

	o.phase += o.increment
	o.phase -= math.Floor(o.phase)

	return a + (b-a)*frac
}
