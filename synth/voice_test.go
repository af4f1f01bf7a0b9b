package synth

import (
	"math"
	"testing"
)

func TestVoiceVolumeClamp(t *testing.T) {
	v := NewVoice(440, 44100, 0.9)
	v.SetVolume(1.5)
	if want, got := 1.0, v.Volume(); want != got {
		t.Errorf("want volume %v, got %v", want, got)
	}
	v.SetVolume(-0.2)
	if want, got := 0.0, v.Volume(); want != got {
		t.Errorf("want volume %v, got %v", want, got)
	}
}

func TestVoiceInactiveSilent(t *testing.T) {
	v := NewVoice(440, 44100, 1)
	for n := 0; n < 100; n++ {
		l, r := v.Tick()
		if l != 0 || r != 0 {
			t.Fatalf("inactive voice produced (%v, %v) at tick %d", l, r, n)
		}
	}
}

func TestVoiceInactiveHoldsPhase(t *testing.T) {
	v := NewVoice(440, 44100, 1)
	v.SetActive(true)
	ref := NewOscillator(440, 44100)

	for n := 0; n < 10; n++ {
		v.Tick()
		ref.Tick()
	}
	v.SetActive(false)
	for n := 0; n < 25; n++ {
		v.Tick() // silence, phase frozen
	}
	v.SetActive(true)
	// Back on, the voice continues from where it stopped.
	l, _ := v.Tick()
	want := ref.Tick() * v.leftGain
	if math.Abs(l-want) > 1e-12 {
		t.Errorf("phase moved while inactive: want %v, got %v", want, l)
	}
}

func TestVoicePanGains(t *testing.T) {
	v := NewVoice(440, 44100, 1)

	v.SetPan(0)
	if v.leftGain != 1 || v.rightGain != 0 {
		t.Errorf("hard left: want gains (1, 0), got (%v, %v)", v.leftGain, v.rightGain)
	}

	v.SetPan(0.5)
	if math.Abs(v.leftGain-v.rightGain) > 1e-12 {
		t.Errorf("center pan: want equal gains, got (%v, %v)", v.leftGain, v.rightGain)
	}

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		v.SetPan(p)
		power := v.leftGain*v.leftGain + v.rightGain*v.rightGain
		if math.Abs(power-1) > 1e-12 {
			t.Errorf("pan %v: want unit power, got %v", p, power)
		}
	}

	v.SetPan(2)
	if want, got := 1.0, v.Pan(); want != got {
		t.Errorf("want pan clamped to %v, got %v", want, got)
	}
}

func TestVoiceSharedPhaseAcrossChannels(t *testing.T) {
	// One oscillator advance per frame: with symmetric pan both channels
	// carry the same sample, scaled by the same gain.
	v := NewVoice(313, 44100, 1)
	v.SetActive(true)
	v.SetPan(0.5)
	for n := 0; n < 500; n++ {
		l, r := v.Tick()
		if l != r {
			t.Fatalf("channels diverged at frame %d: %v != %v", n, l, r)
		}
	}
}
