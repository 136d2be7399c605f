// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/source"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16
	offset     int
	// chunk caps the bytes returned per Read; odd values split samples.
	chunk        int
	returnErrors bool
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	raw := make([]byte, 2*len(m.samples))
	for i, s := range m.samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(s))
	}
	if m.offset >= len(raw) {
		return 0, io.EOF
	}

	end := len(raw)
	if m.chunk > 0 {
		end = min(end, m.offset+m.chunk)
	}
	n := copy(buf, raw[m.offset:end])
	m.offset += n
	if m.offset >= len(raw) {
		return n, io.EOF
	}
	return n, nil
}

func newTestSource(r *mockMP3Reader) *mp3Source {
	return &mp3Source{dec: r, sampleRate: r.sampleRate, buf: make([]byte, 8192)}
}

func readAll(t *testing.T, src *mp3Source, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("This is not MP3 data"),
		"empty": {},
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: Decode() error = nil, want error", name)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 48000})
	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
}

func TestSource_ReadSamples_ConversionAccuracy(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 1}
	got := readAll(t, newTestSource(&mockMP3Reader{sampleRate: 44100, samples: samples}), 64)

	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_ReadSamples_SplitSample(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, -1000, 2000, -2000, 3000, -3000}
	got := readAll(t, newTestSource(&mockMP3Reader{sampleRate: 44100, samples: samples, chunk: 3}), 4)

	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_ReadSamples_EmptyAndMisaligned(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 8)})
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, source.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want %v", err, source.ErrInvalidDstSize)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 44100, returnErrors: true})
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestSource_BufferGrows(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 20000)})
	src.ReadSamples(make([]float32, 10000))
	if src.BufSize() < 10000 {
		t.Errorf("BufSize() = %d, want at least 10000", src.BufSize())
	}
}

func TestSource_FeedsReadAll(t *testing.T) {
	t.Parallel()

	// Left full scale, right silent: the mono track is half scale.
	samples := make([]int16, 200)
	for i := 0; i < len(samples); i += 2 {
		samples[i] = 16384
	}

	mono, err := source.ReadAll(newTestSource(&mockMP3Reader{sampleRate: 44100, samples: samples}), 44100)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(mono) != 100 {
		t.Fatalf("len(ReadAll()) = %d, want 100", len(mono))
	}
	if mono[0] != 0.25 {
		t.Errorf("mono[0] = %v, want 0.25", mono[0])
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newTestSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 8192)})
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
