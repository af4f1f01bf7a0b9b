package synth

// Op identifies a control message variant.
type Op uint8

const (
	OpSelectVoice Op = iota
	OpToggleVoice
	OpSetFrequency
	OpSetVolume
	OpSetPan
	OpSetCutoff
	OpSetLFORate
	OpSetLFODepth
)

// Message is one control command on its way from an input producer to the
// render context. Messages are small and copied by value. Payloads are not
// validated by the sender; the engine clamps or ignores whatever arrives.
type Message struct {
	Op    Op
	Index int     // voice index, used by OpSelectVoice and OpToggleVoice
	Value float64 // numeric payload for the remaining variants
}

func SelectVoice(index int) Message {
	return Message{Op: OpSelectVoice, Index: index}
}

func ToggleVoice(index int) Message {
	return Message{Op: OpToggleVoice, Index: index}
}

func SetFrequency(hz float64) Message {
	return Message{Op: OpSetFrequency, Value: hz}
}

func SetVolume(vol float64) Message {
	return Message{Op: OpSetVolume, Value: vol}
}

func SetPan(p float64) Message {
	return Message{Op: OpSetPan, Value: p}
}

func SetCutoff(hz float64) Message {
	return Message{Op: OpSetCutoff, Value: hz}
}

func SetLFORate(hz float64) Message {
	return Message{Op: OpSetLFORate, Value: hz}
}

func SetLFODepth(d float64) Message {
	return Message{Op: OpSetLFODepth, Value: d}
}
