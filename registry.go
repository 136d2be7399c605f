// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/source"
)

// NewRegistry returns a registry with a decoder for every supported format.
func NewRegistry() *source.Registry {
	reg := source.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

// LoadTrack decodes the file at path into mono track material at
// sampleRate.
func LoadTrack(reg *source.Registry, path string, sampleRate int) (buf []float32, err error) {
	src, err := reg.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return source.ReadAll(src, sampleRate)
}
