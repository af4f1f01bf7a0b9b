package synth

// Engine owns the voice pool and everything else the render context mutates.
// Outside influence only arrives as Messages; no other code may touch voice
// or filter state directly.
type Engine struct {
	voices     []Voice
	selected   int // index of the controlled voice, -1 when none
	sampleRate float64
	masterGain float64
	norm       float64 // fixed normalization divisor, 1/len(voices)

	lowpass *Lowpass
	lfo     *LFO
	effects []Effect
}

// NewEngine builds the voice pool and the shared effect chain from cfg. The
// caller is expected to have run cfg.Validate already.
func NewEngine(cfg Config) *Engine {
	voices := make([]Voice, cfg.Voices)
	for i := range voices {
		voices[i] = NewVoice(cfg.Frequency, float64(cfg.SampleRate), cfg.Volume)
	}
	e := &Engine{
		voices:     voices,
		selected:   -1,
		sampleRate: float64(cfg.SampleRate),
		masterGain: cfg.MasterGain,
		norm:       1 / float64(len(voices)),
	}
	e.lowpass = NewLowpass(e.sampleRate, cfg.Cutoff)
	e.lfo = NewLFO(e.sampleRate, e.lowpass)
	e.effects = []Effect{e.lfo, e.lowpass}
	return e
}

// ProcessMessage applies one control message. The switch is total over the
// message set. Out-of-range indices and a missing selection degrade to
// no-ops; there is no panic path in here.
func (e *Engine) ProcessMessage(msg Message) {
	switch msg.Op {
	case OpSelectVoice:
		if msg.Index >= 0 && msg.Index < len(e.voices) {
			e.selected = msg.Index
		}
	case OpToggleVoice:
		if msg.Index >= 0 && msg.Index < len(e.voices) {
			v := &e.voices[msg.Index]
			v.SetActive(!v.Active())
		}
	case OpSetFrequency:
		if e.selected >= 0 {
			e.voices[e.selected].SetFrequency(msg.Value)
		}
	case OpSetVolume:
		if e.selected >= 0 {
			e.voices[e.selected].SetVolume(msg.Value)
		}
	case OpSetPan:
		if e.selected >= 0 {
			e.voices[e.selected].SetPan(msg.Value)
		}
	case OpSetCutoff:
		e.lfo.SetBase(msg.Value)
	case OpSetLFORate:
		e.lfo.SetRate(msg.Value)
	case OpSetLFODepth:
		e.lfo.SetDepth(msg.Value)
	}
}

// Render writes exactly frames stereo frames into dst as interleaved
// left/right pairs; dst must hold 2*frames values. The voice sum is divided
// by the pool size, so even with every voice at full volume the mix stays in
// [-1, 1] before the effect chain. Render does not allocate and does not
// block.
func (e *Engine) Render(frames int, dst []float64) {
	if frames > len(dst)/2 {
		frames = len(dst) / 2
	}
	scale := e.norm * e.masterGain
	for i := 0; i < frames; i++ {
		var left, right float64
		for j := range e.voices {
			l, r := e.voices[j].Tick()
			left += l
			right += r
		}
		dst[2*i] = left * scale
		dst[2*i+1] = right * scale
	}
	block := dst[:2*frames]
	for _, fx := range e.effects {
		fx.Process(block)
	}
}

// VoiceStatus is a copy of one voice's control state.
type VoiceStatus struct {
	Active    bool
	Frequency float64
	Volume    float64
	Pan       float64
}

// Snapshot is a point-in-time copy of the engine's control state, taken by
// the render context for display elsewhere.
type Snapshot struct {
	Selected int // -1 when no voice is selected
	Cutoff   float64
	Voices   []VoiceStatus
}

func (e *Engine) snapshot() *Snapshot {
	snap := &Snapshot{
		Selected: e.selected,
		Cutoff:   e.lowpass.Cutoff(),
		Voices:   make([]VoiceStatus, len(e.voices)),
	}
	for i := range e.voices {
		v := &e.voices[i]
		snap.Voices[i] = VoiceStatus{
			Active:    v.Active(),
			Frequency: v.Frequency(),
			Volume:    v.Volume(),
			Pan:       v.Pan(),
		}
	}
	return snap
}
