package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tline/triad/synth"
)

type command struct {
	name  string
	usage string
	run   func(*session, []string) error
	arity int // -n means len(args) must be >= n
}

var commands = []command{
	{"voice", "voice <n>: select voice n for freq/vol/pan", voiceCommand, 1},
	{"toggle", "toggle <n>: switch voice n on or off", toggleCommand, 1},
	{"freq", "freq <hz>: set the selected voice's frequency", freqCommand, 1},
	{"vol", "vol <v>: set the selected voice's volume (0-1)", volCommand, 1},
	{"pan", "pan <p>: place the selected voice (0 left, 1 right)", panCommand, 1},
	{"cutoff", "cutoff <hz>: set the lowpass cutoff", cutoffCommand, 1},
	{"lfo", "lfo <rate> <depth>: sweep the cutoff", lfoCommand, 2},
	{"status", "status: show the voices", statusCommand, 0},
	{"stats", "stats: show playback health counters", statsCommand, 0},
	{"help", "help: list commands", nil, 0},
	{"quit", "quit: stop the synth", quitCommand, 0},
}

// helpCommand walks commands, so its entry is filled in here to avoid an
// initialization cycle.
func init() {
	for i := range commands {
		if commands[i].name == "help" {
			commands[i].run = helpCommand
		}
	}
}

func voiceCommand(s *session, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	return s.send(synth.SelectVoice(n))
}

func toggleCommand(s *session, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	return s.send(synth.ToggleVoice(n))
}

func freqCommand(s *session, args []string) error {
	hz, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	return s.send(synth.SetFrequency(hz))
}

func volCommand(s *session, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	return s.send(synth.SetVolume(v))
}

func panCommand(s *session, args []string) error {
	p, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	return s.send(synth.SetPan(p))
}

func cutoffCommand(s *session, args []string) error {
	hz, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	return s.send(synth.SetCutoff(hz))
}

func lfoCommand(s *session, args []string) error {
	rate, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	depth, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return err
	}
	if err := s.send(synth.SetLFORate(rate)); err != nil {
		return err
	}
	return s.send(synth.SetLFODepth(depth))
}

func statusCommand(s *session, args []string) error {
	renderStatus(s.cycle.Status(), os.Stdout)
	return nil
}

func statsCommand(s *session, args []string) error {
	st := s.ring.Stats()
	fmt.Printf("windows %d  bytes %d  underruns %d  deadline misses %d\n",
		st.Windows, st.BytesStreamed, st.Underruns, st.DeadlineMisses)
	return nil
}

func helpCommand(s *session, args []string) error {
	for _, cmd := range commands {
		fmt.Println(cmd.usage)
	}
	return nil
}

func quitCommand(s *session, args []string) error {
	return errQuit
}
