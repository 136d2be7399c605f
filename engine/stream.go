// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/ik5/audmix/mix"

// Result is returned by callbacks to keep or stop period delivery.
type Result = mix.Result

const (
	Continue = mix.Continue
	Stop     = mix.Stop
)

// StreamConfig is what a Backend needs to open one stream.
type StreamConfig struct {
	SampleRate        int
	Channels          int
	FramesPerCallback int
	LowLatency        bool
}

// Samples returns the number of interleaved samples in one period.
func (c StreamConfig) Samples() int {
	return c.FramesPerCallback * c.Channels
}

// Stream is an open device stream. Stop must not return while a callback on
// the stream is still running.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Renderer fills one period of interleaved output.
type Renderer interface {
	OnAudioReady(s Stream, out []float32, frames int) Result
}

// Capturer receives one period of interleaved input.
type Capturer interface {
	OnAudioCaptured(s Stream, in []float32, frames int) Result
}

// Backend opens output streams that call r once per period.
type Backend interface {
	OpenOutput(cfg StreamConfig, r Renderer) (Stream, error)
}

// InputBackend is implemented by backends that can also capture.
type InputBackend interface {
	Backend
	OpenInput(cfg StreamConfig, c Capturer) (Stream, error)
}
