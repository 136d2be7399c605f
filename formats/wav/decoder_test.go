// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/source"
)

// createWAVFile builds a canonical 44 byte header PCM file in memory.
func createWAVFile(sampleRate, channels, bitsPerSample, format int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(format))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

// mockWavReader feeds fixed integer samples like gowav.Decoder.PCMBuffer.
type mockWavReader struct {
	format  *goaudio.Format
	samples []int
	offset  int
	err     error
}

func (m *mockWavReader) Format() *goaudio.Format { return m.format }

func (m *mockWavReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 0}
	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, 1, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(samples))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 0}
	for i := range n {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createWAVFile(16000, 2, 16, 1, []int16{1, 2, 3, 4})
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "not riff",
			data: []byte("This is definitely not a WAV file, just text padding it out"),
			want: ErrNotWavFile,
		},
		{
			name: "empty",
			data: nil,
			want: ErrNotWavFile,
		},
		{
			name: "float format",
			data: createWAVFile(8000, 1, 16, 3, []int16{0, 0}),
			want: ErrOnlyPCMSupported,
		},
		{
			name: "8 bit",
			data: createWAVFile(8000, 1, 8, 1, []int16{0, 0}),
			want: ErrUnsupportedBitDepth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSource_ReadSamples_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		sample   int
		want     float32
	}{
		{16, 16384, 0.5},
		{24, -4194304, -0.5},
		{32, 1073741824, 0.5},
	}

	for _, tt := range tests {
		src := &wavSource{
			dec: &mockWavReader{
				format:  &goaudio.Format{NumChannels: 1, SampleRate: 8000},
				samples: []int{tt.sample},
			},
			sampleRate: 8000,
			channels:   1,
			bitDepth:   tt.bitDepth,
		}

		buf := make([]float32, 4)
		n, err := src.ReadSamples(buf)
		if n != 1 || !errors.Is(err, io.EOF) {
			t.Fatalf("%d bit: ReadSamples() = %d, %v, want 1, EOF", tt.bitDepth, n, err)
		}
		if math.Abs(float64(buf[0]-tt.want)) > 1e-7 {
			t.Errorf("%d bit: buf[0] = %v, want %v", tt.bitDepth, buf[0], tt.want)
		}
	}
}

func TestSource_ReadSamples_MultipleReads(t *testing.T) {
	t.Parallel()

	ints := make([]int, 10)
	for i := range ints {
		ints[i] = i * 1000
	}
	src := &wavSource{
		dec:        &mockWavReader{format: &goaudio.Format{NumChannels: 2, SampleRate: 8000}, samples: ints},
		sampleRate: 8000,
		channels:   2,
		bitDepth:   16,
	}

	buf := make([]float32, 4)
	total := 0
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	if total != len(ints) {
		t.Errorf("total samples = %d, want %d", total, len(ints))
	}

	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_EmptyAndMisaligned(t *testing.T) {
	t.Parallel()

	src := &wavSource{
		dec:        &mockWavReader{format: &goaudio.Format{NumChannels: 2}, samples: []int{1, 2}},
		sampleRate: 8000,
		channels:   2,
		bitDepth:   16,
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, source.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want %v", err, source.ErrInvalidDstSize)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &wavSource{
		dec:        &mockWavReader{format: &goaudio.Format{NumChannels: 1}, err: boom},
		sampleRate: 8000,
		channels:   1,
		bitDepth:   16,
	}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_BufSize(t *testing.T) {
	t.Parallel()

	src := &wavSource{
		dec:      &mockWavReader{format: &goaudio.Format{NumChannels: 1}, samples: make([]int, 100)},
		channels: 1,
		bitDepth: 16,
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() before read = %d, want 4096", src.BufSize())
	}
	src.ReadSamples(make([]float32, 64))
	if src.BufSize() != 64 {
		t.Errorf("BufSize() after read = %d, want 64", src.BufSize())
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := createWAVFile(44100, 2, 16, 1, make([]int16, 44100*2))
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
