//go:build cgo

package main

import (
	"fmt"
	"log"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/tline/triad/synth"
)

// listenMIDI opens the first midi input port and maps it onto the control
// messages: a note-on selects voice (note mod voiceCount), toggles it, and
// retunes it to the note's pitch; CC7/CC10/CC74 drive volume, pan and
// cutoff of whatever is selected. Pushes that hit a full queue are dropped
// without comment - controller data goes stale faster than it is worth
// waiting for.
func listenMIDI(sender *synth.Sender, cfg synth.Config) (func(), error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, err
	}
	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, err
	}
	if len(ins) == 0 {
		drv.Close()
		return nil, fmt.Errorf("no midi input ports found")
	}
	in := ins[0]
	if err := in.Open(); err != nil {
		drv.Close()
		return nil, err
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel, cc, val uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			idx := int(key) % cfg.Voices
			sender.Push(synth.SelectVoice(idx))
			sender.Push(synth.ToggleVoice(idx))
			sender.Push(synth.SetFrequency(noteToFreq(int(key))))
		case msg.GetControlChange(&ch, &cc, &val):
			switch cc {
			case 7:
				sender.Push(synth.SetVolume(float64(val) / 127))
			case 10:
				sender.Push(synth.SetPan(float64(val) / 127))
			case 74:
				// exponential sweep from 20 Hz to 20 kHz
				sender.Push(synth.SetCutoff(20 * math.Pow(1000, float64(val)/127)))
			}
		}
	})
	if err != nil {
		in.Close()
		drv.Close()
		return nil, err
	}
	log.Printf("midi: listening on %s", in.String())

	return func() {
		stop()
		in.Close()
		drv.Close()
	}, nil
}

func noteToFreq(note int) float64 {
	return math.Pow(2, float64(note-69)/12.0) * 440
}
