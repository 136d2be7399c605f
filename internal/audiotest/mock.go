// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic audio fixtures for tests: streaming
// sources that satisfy source.Source and ready-made track buffers.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// MockSource generates frames from a waveform function.
// It implements source.Source without importing it.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	bufSize     int
	closed      bool
	waveform    func(frame int, channel int) float32
}

// NewMockSource creates a source of totalFrames frames whose samples come
// from waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		bufSize:     4096,
		waveform:    waveform,
	}
}

// NewSilentSource creates a source of zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewSineSource creates a source with the same sine on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		return sine(frame, sampleRate, frequency)
	})
}

// NewConstantSource creates a source where every sample is value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// WithBufSize changes what BufSize reports.
func (m *MockSource) WithBufSize(n int) *MockSource {
	m.bufSize = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return m.bufSize }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the source to the first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

var ErrBroken = errors.New("audiotest: broken source")

// BrokenSource yields good frames and then fails with ErrBroken.
type BrokenSource struct {
	*MockSource
}

// NewBrokenSource returns a source that fails after goodFrames frames.
func NewBrokenSource(sampleRate, channels, goodFrames int) *BrokenSource {
	return &BrokenSource{NewConstantSource(sampleRate, channels, goodFrames, 0.25)}
}

func (b *BrokenSource) ReadSamples(dst []float32) (int, error) {
	n, err := b.MockSource.ReadSamples(dst)
	if errors.Is(err, io.EOF) {
		return n, ErrBroken
	}
	return n, err
}

func sine(frame, sampleRate int, frequency float64) float32 {
	t := float64(frame) / float64(sampleRate)
	return float32(math.Sin(2 * math.Pi * frequency * t))
}
