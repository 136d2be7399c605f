// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audmix/utils"
)

// Encoder writes interleaved float32 samples as integer PCM WAV.
// The header sizes are patched on Close, so the target must seek.
type Encoder struct {
	enc      *gowav.Encoder
	bitDepth int
	buf      *goaudio.IntBuffer
	frames   int
	closed   bool
}

// NewEncoder starts a WAV stream on w. bitDepth is 16, 24 or 32.
func NewEncoder(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Encoder, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &Encoder{
		enc:      gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Write appends interleaved samples. len(samples) must be a whole number
// of frames.
func (e *Encoder) Write(samples []float32) error {
	if e.closed {
		return ErrEncoderClosed
	}
	channels := e.buf.Format.NumChannels
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrUnsupportedWavLayout, len(samples), channels)
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(e.buf.Data) < len(samples) {
		e.buf.Data = make([]int, len(samples))
	}
	e.buf.Data = e.buf.Data[:len(samples)]
	for i, x := range samples {
		e.buf.Data[i] = utils.Float32ToInt(x, e.bitDepth)
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("wav: write: %w", err)
	}
	e.frames += len(samples) / channels
	return nil
}

// Frames is the number of frames written so far.
func (e *Encoder) Frames() int { return e.frames }

// Close finalizes the headers. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("wav: close: %w", err)
	}
	return nil
}

// WriteFile writes samples to a new WAV file at path.
func WriteFile(path string, sampleRate, channels, bitDepth int, samples []float32) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("wav: %w", cerr)
		}
	}()

	enc, err := NewEncoder(f, sampleRate, channels, bitDepth)
	if err != nil {
		return err
	}
	if err := enc.Write(samples); err != nil {
		return err
	}
	return enc.Close()
}
