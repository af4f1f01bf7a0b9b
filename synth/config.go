package synth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the build-time surface of the synth. Everything here is fixed
// before the first sample is rendered; there are no runtime knobs outside
// the control channel.
type Config struct {
	Voices     int     `yaml:"voices"`
	SampleRate int     `yaml:"sample_rate"`
	Frequency  float64 `yaml:"frequency"`   // starting frequency for every voice, Hz
	Volume     float64 `yaml:"volume"`      // default voice volume
	MasterGain float64 `yaml:"master_gain"` // post-mix gain, leaves headroom for the filter
	QueueSize  int     `yaml:"queue_size"`  // control channel capacity
	BufferSize int     `yaml:"buffer_size"` // transfer buffer bytes, see Validate
	BitDepth   int     `yaml:"bit_depth"`   // output slot width: 16 or 32
	Cutoff     float64 `yaml:"cutoff"`      // initial lowpass cutoff, Hz
}

// DefaultConfig matches the reference hardware: three voices at 44.1 kHz,
// 16 bit slots, and a 2052 byte transfer buffer (a multiple of lcm(3, 4)).
func DefaultConfig() Config {
	return Config{
		Voices:     3,
		SampleRate: 44100,
		Frequency:  77,
		Volume:     0.9,
		MasterGain: 0.85,
		QueueSize:  8,
		BufferSize: 2052,
		BitDepth:   16,
		Cutoff:     20000,
	}
}

// LoadConfig reads a yaml config from path and validates the result. Keys
// missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Format returns the output wire format.
func (c Config) Format() Format {
	return Format{BitDepth: c.BitDepth, Channels: 2}
}

// Validate rejects configurations the hardware model cannot honor. This is
// the fatal boundary for sizing mistakes: a buffer length that violates the
// descriptor alignment law would show up later as partial-frame windows, so
// it never gets past here.
func (c Config) Validate() error {
	if c.Voices < 1 {
		return fmt.Errorf("config: need at least one voice, got %d", c.Voices)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("config: invalid sample rate %d", c.SampleRate)
	}
	if c.BitDepth != 16 && c.BitDepth != 32 {
		return fmt.Errorf("config: bit depth must be 16 or 32, got %d", c.BitDepth)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("config: queue size must be positive, got %d", c.QueueSize)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("config: starting frequency must be positive, got %v", c.Frequency)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("config: volume %v outside [0, 1]", c.Volume)
	}
	if c.MasterGain <= 0 || c.MasterGain > 1 {
		return fmt.Errorf("config: master gain %v outside (0, 1]", c.MasterGain)
	}
	frameSize := c.Format().FrameSize()
	if c.BufferSize <= 0 {
		return fmt.Errorf("config: buffer size must be positive, got %d", c.BufferSize)
	}
	if c.BufferSize > smallBufferThreshold {
		return fmt.Errorf("config: buffer size %d exceeds the %d byte descriptor limit",
			c.BufferSize, smallBufferThreshold)
	}
	if align := lcm(descriptorCount, frameSize); c.BufferSize%align != 0 {
		return fmt.Errorf("config: buffer size %d must be a multiple of %d (%d descriptors of %d byte frames)",
			c.BufferSize, align, descriptorCount, frameSize)
	}
	return nil
}
