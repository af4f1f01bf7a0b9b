package synth

import "math"

const (
	maxLFORate = 20.0
	lfoOctaves = 2.0 // modulation sweep range at full depth, in octaves
)

// LFO sweeps the lowpass cutoff around a base value. It runs at block rate:
// one phase advance and one filter retune per rendered window, which is
// plenty of resolution for sub-20 Hz rates and keeps the per-sample path
// untouched.
type LFO struct {
	target     *Lowpass
	sampleRate float64

	base  float64
	rate  float64
	depth float64
	phase float64
}

func NewLFO(sampleRate float64, target *Lowpass) *LFO {
	return &LFO{
		target:     target,
		sampleRate: sampleRate,
		base:       target.Cutoff(),
	}
}

// SetBase moves the center of the sweep. With rate or depth at zero the
// cutoff simply follows the base.
func (l *LFO) SetBase(hz float64) {
	l.base = clamp(hz, minCutoff, maxCutoff)
}

func (l *LFO) SetRate(hz float64) {
	l.rate = clamp(hz, 0, maxLFORate)
}

func (l *LFO) SetDepth(d float64) {
	l.depth = clamp(d, 0, 1)
}

func (l *LFO) Process(buf []float64) {
	mod := 0.0
	if l.rate > 0 && l.depth > 0 {
		frames := len(buf) / 2
		l.phase += l.rate * float64(frames) / l.sampleRate
		l.phase -= math.Floor(l.phase)
		mod = math.Sin(2*math.Pi*l.phase) * l.depth * lfoOctaves
	}
	cutoff := l.base * math.Pow(2, mod)
	if cutoff != l.target.Cutoff() {
		l.target.SetCutoff(cutoff)
	}
}
