package synth

import "math"

// Voice wraps one oscillator with volume, an active flag and a stereo
// position. Frequency and volume survive activation toggles, and an inactive
// voice holds its phase, so switching it back on resumes exactly where it
// left off.
type Voice struct {
	osc    Oscillator
	volume float64
	active bool

	pan       float64
	leftGain  float64
	rightGain float64
}

func NewVoice(frequency, sampleRate, volume float64) Voice {
	v := Voice{osc: NewOscillator(frequency, sampleRate)}
	v.SetVolume(volume)
	v.SetPan(0.5)
	return v
}

func (v *Voice) SetFrequency(freq float64) {
	v.osc.SetFrequency(freq)
}

func (v *Voice) Frequency() float64 {
	return v.osc.Frequency()
}

// SetVolume clamps vol into [0, 1].
func (v *Voice) SetVolume(vol float64) {
	v.volume = clamp(vol, 0, 1)
}

func (v *Voice) Volume() float64 {
	return v.volume
}

// SetPan places the voice in the stereo field: 0 is hard left, 1 hard right.
// The equal-power gain pair is computed here and cached; the per-sample path
// only multiplies.
func (v *Voice) SetPan(p float64) {
	v.pan = clamp(p, 0, 1)
	angle := v.pan * math.Pi / 2
	v.leftGain = math.Cos(angle)
	v.rightGain = math.Sin(angle)
}

func (v *Voice) Pan() float64 {
	return v.pan
}

func (v *Voice) SetActive(active bool) {
	v.active = active
}

func (v *Voice) Active() bool {
	return v.active
}

// Tick produces one stereo frame. A single oscillator advance feeds both
// channels through the cached pan gains; an inactive voice returns silence
// without advancing its phase.
func (v *Voice) Tick() (left, right float64) {
	if !v.active {
		return 0, 0
	}
	s := v.osc.Tick() * v.volume
	return s * v.leftGain, s * v.rightGain
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
