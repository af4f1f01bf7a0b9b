package main

import (
	"fmt"
	"io"

	"github.com/tline/triad/synth"
)

// renderStatus prints one row per voice: selection cursor, id, speaker icon,
// frequency, volume and pan, followed by the shared filter state.
func renderStatus(snap *synth.Snapshot, w io.Writer) {
	for i, v := range snap.Voices {
		cursor := " "
		if i == snap.Selected {
			cursor = colorize(">", colorGreen)
		}
		speaker := "🔇"
		if v.Active {
			speaker = "🔈"
		}
		id := colorize(fmt.Sprintf("%d", i), colorBlue)
		fmt.Fprintf(w, "%s %s %s %8.2f Hz  vol %.2f  pan %.2f\n",
			cursor, id, speaker, v.Frequency, v.Volume, v.Pan)
	}
	fmt.Fprintf(w, "  %s %8.2f Hz\n", colorize("cutoff", colorMagenta), snap.Cutoff)
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
