//go:build !cgo

package main

import (
	"fmt"

	"github.com/tline/triad/synth"
)

func listenMIDI(sender *synth.Sender, cfg synth.Config) (func(), error) {
	return nil, fmt.Errorf("midi input requires a cgo build")
}
