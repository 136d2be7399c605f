// SPDX-License-Identifier: EPL-2.0

package engine

import "fmt"

const (
	DefaultSampleRate        = 44100
	DefaultFramesPerCallback = 256
	DefaultRecordSeconds     = 60

	// OutputChannels is the only supported output layout (stereo).
	OutputChannels = 2
	// SampleFormatFloat32 is the only supported sample format.
	SampleFormatFloat32 = "float32"

	minFramesPerCallback = 16
	maxFramesPerCallback = 8192
)

// Config describes the streams an Engine opens.
type Config struct {
	SampleRate        int    `yaml:"sample_rate"`
	FramesPerCallback int    `yaml:"frames_per_callback"`
	Channels          int    `yaml:"channels"`
	SampleFormat      string `yaml:"sample_format"`

	// HighLatency opts out of the low latency performance mode streams
	// are opened in by default.
	HighLatency bool `yaml:"high_latency"`

	// InputChannels enables capture when > 0 and the backend supports it.
	InputChannels int `yaml:"input_channels"`
	// MaxRecordSeconds bounds one recorded take; later input is dropped.
	MaxRecordSeconds int `yaml:"max_record_seconds"`
}

// DefaultConfig returns a 44.1kHz stereo float32 low latency configuration
// with 256 frames per callback and no input.
func DefaultConfig() Config {
	return Config{
		SampleRate:        DefaultSampleRate,
		FramesPerCallback: DefaultFramesPerCallback,
		Channels:          OutputChannels,
		SampleFormat:      SampleFormatFloat32,
		MaxRecordSeconds:  DefaultRecordSeconds,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.SampleRate == 0 {
		c.SampleRate = def.SampleRate
	}
	if c.FramesPerCallback == 0 {
		c.FramesPerCallback = def.FramesPerCallback
	}
	if c.Channels == 0 {
		c.Channels = def.Channels
	}
	if c.SampleFormat == "" {
		c.SampleFormat = def.SampleFormat
	}
	if c.MaxRecordSeconds == 0 {
		c.MaxRecordSeconds = def.MaxRecordSeconds
	}
	return c
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Channels != OutputChannels {
		return fmt.Errorf("%w: %d output channels, only stereo is supported", ErrInvalidConfig, c.Channels)
	}
	if c.SampleFormat != SampleFormatFloat32 {
		return fmt.Errorf("%w: sample format %q", ErrInvalidConfig, c.SampleFormat)
	}
	if c.FramesPerCallback < minFramesPerCallback || c.FramesPerCallback > maxFramesPerCallback {
		return fmt.Errorf("%w: %d frames per callback, want %d..%d",
			ErrInvalidConfig, c.FramesPerCallback, minFramesPerCallback, maxFramesPerCallback)
	}
	if c.InputChannels < 0 || c.InputChannels > 2 {
		return fmt.Errorf("%w: %d input channels", ErrInvalidConfig, c.InputChannels)
	}
	if c.MaxRecordSeconds < 0 {
		return fmt.Errorf("%w: negative record length", ErrInvalidConfig)
	}
	return nil
}

func (c Config) outputStream() StreamConfig {
	return StreamConfig{
		SampleRate:        c.SampleRate,
		Channels:          c.Channels,
		FramesPerCallback: c.FramesPerCallback,
		LowLatency:        !c.HighLatency,
	}
}

func (c Config) inputStream() StreamConfig {
	sc := c.outputStream()
	sc.Channels = c.InputChannels
	return sc
}

// recordCapacity is the number of interleaved input samples one take holds.
func (c Config) recordCapacity() int {
	return c.MaxRecordSeconds * c.SampleRate * c.InputChannels
}
