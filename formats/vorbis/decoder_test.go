// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/source"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	frames := min(len(buf), len(m.samples)-m.offset) / m.channels
	n := copy(buf, m.samples[m.offset:m.offset+frames*m.channels])
	m.offset += n
	if m.offset >= len(m.samples) {
		return n, io.EOF
	}
	return n, nil
}

func newTestSource(channels int, samples []float32) *vorbisSource {
	return &vorbisSource{
		dec:        &mockOggVorbisReader{sampleRate: 44100, channels: channels, samples: samples},
		sampleRate: 44100,
		channels:   channels,
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("This is not Ogg Vorbis data"),
		"empty": {},
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: Decode() error = nil, want error", name)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3, 0.4, 0.5}},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}},
		{"surround", 6, make([]float32, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newTestSource(tt.channels, tt.samples)
			buf := make([]float32, 2*tt.channels)

			var got []float32
			for {
				n, err := src.ReadSamples(buf)
				got = append(got, buf[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(tt.samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.samples))
			}
			for i := range got {
				if got[i] != tt.samples[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.samples[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EmptyAndMisaligned(t *testing.T) {
	t.Parallel()

	src := newTestSource(2, make([]float32, 8))
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, source.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want %v", err, source.ErrInvalidDstSize)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(1, nil)
	src.dec.(*mockOggVorbisReader).returnErrors = true
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestSource_FeedsReadAll(t *testing.T) {
	t.Parallel()

	stereo := []float32{1, 0, 0.5, 0.5, -1, 0}
	mono, err := source.ReadAll(newTestSource(2, stereo), 44100)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float32{0.5, 0.5, -0.5}
	if len(mono) != len(want) {
		t.Fatalf("len(ReadAll()) = %d, want %d", len(mono), len(want))
	}
	for i := range want {
		if mono[i] != want[i] {
			t.Errorf("mono[%d] = %v, want %v", i, mono[i], want[i])
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 44100*2)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newTestSource(2, samples)
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
