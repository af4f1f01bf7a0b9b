package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/tline/triad/synth"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a yaml config file")
		backend    = flag.String("backend", "portaudio", "audio backend: portaudio or oto")
		run        = flag.String("run", "", "command script to execute before the prompt")
		out        = flag.String("out", "", "render to a wav file instead of playing")
		dur        = flag.Float64("dur", 5, "seconds to render with -out")
		midiIn     = flag.Bool("midi", false, "hand the controls to the first midi input")
	)
	flag.Parse()

	cfg := synth.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = synth.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var script []string
	if *run != "" {
		var err error
		if script, err = readScript(*run); err != nil {
			log.Fatal(err)
		}
	}

	sender, recv := synth.NewControlChannel(cfg.QueueSize)
	engine := synth.NewEngine(cfg)
	ring, err := synth.NewHardwareRingBuffer(cfg.BufferSize, cfg.Format(), cfg.SampleRate)
	if err != nil {
		log.Fatal(err)
	}
	cycle := synth.NewCycle(engine, recv, cfg.Format(), ring.WindowSize())

	sess := &session{sender: sender, cycle: cycle, ring: ring, cfg: cfg}

	// Script commands are pushed before priming so the very first rendered
	// frames already reflect them.
	for _, line := range script {
		if err := sess.eval(line); err != nil {
			log.Fatal(err)
		}
	}

	ring.Prime(cycle.Fill)
	go cycle.Run(ring)

	if *out != "" {
		sink, err := synth.NewWAVSink(ring, cfg, *out, *dur)
		if err != nil {
			log.Fatal(err)
		}
		if err := sink.Write(); err != nil {
			log.Fatal(err)
		}
		ring.Close()
		return
	}

	sink, err := synth.NewSink(*backend, ring, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := sink.Start(); err != nil {
		log.Fatal(err)
	}
	defer sink.Stop()

	if *midiIn {
		// The midi callback becomes the one producer; the repl keeps the
		// read-only commands.
		stop, err := listenMIDI(sender, cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer stop()
		sess.sender = nil
	}

	if err := repl(sess); err != nil && err != io.EOF {
		fmt.Println(err)
		os.Exit(1)
	}
	ring.Close()
}

func readScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// session is the control surface's view of the running synth: the producer
// end of the control channel plus read-only diagnostics.
type session struct {
	sender *synth.Sender // nil when another producer owns the controls
	cycle  *synth.Cycle
	ring   *synth.HardwareRingBuffer
	cfg    synth.Config
}

// send pushes one message. A full queue is reported to the user rather than
// retried; the next reading from the controls supersedes a dropped one.
func (s *session) send(msg synth.Message) error {
	if s.sender == nil {
		return fmt.Errorf("controls are owned by the midi input")
	}
	if !s.sender.Push(msg) {
		return fmt.Errorf("control queue full, message dropped")
	}
	return nil
}
