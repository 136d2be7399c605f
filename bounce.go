// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ik5/audmix/backend/offline"
	"github.com/ik5/audmix/engine"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mix"
	"github.com/ik5/audmix/source"
)

const DefaultBitDepth = 16

// BounceOptions controls an offline render.
type BounceOptions struct {
	// BitDepth of the WAV file: 16, 24 or 32. Defaults to 16.
	BitDepth int
	// Frames to render. Zero renders the longest track.
	Frames int64
	// Tail adds frames of silence after the rendered length.
	Tail int64
	// Logger for progress events. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Bounce renders the session through the offline backend and writes the
// stereo mix to w as WAV. It returns the number of frames written.
func Bounce(ctx context.Context, s *Session, reg *source.Registry, w io.WriteSeeker, opts BounceOptions) (int64, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	cfg := s.Engine
	cfg.InputChannels = 0

	b := &offline.Backend{}
	eng := engine.New(b, engine.WithConfig(cfg), engine.WithLogger(log))
	defer eng.Close()

	if err := eng.Initialize(); err != nil {
		return 0, err
	}
	if _, err := s.Apply(eng, reg); err != nil {
		return 0, err
	}

	frames := opts.Frames
	if frames <= 0 {
		frames = Longest(eng.Tracks())
	}
	frames += opts.Tail
	if frames <= 0 {
		return 0, ErrEmptyBounce
	}

	enc, err := wav.NewEncoder(w, eng.Config().SampleRate, engine.OutputChannels, bitDepth)
	if err != nil {
		return 0, err
	}
	if err := eng.StartPlayback(); err != nil {
		return 0, err
	}

	log.Info().Int64("frames", frames).Int("tracks", len(s.Tracks)).Msg("bouncing")
	err = b.Output().Render(int(frames), func(period []float32) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return enc.Write(period)
	})
	if err != nil {
		return int64(enc.Frames()), fmt.Errorf("bounce: %w", err)
	}
	if err := enc.Close(); err != nil {
		return int64(enc.Frames()), err
	}

	m := eng.Metrics()
	log.Info().
		Int64("frames", int64(enc.Frames())).
		Uint64("periods", m.Callbacks).
		Uint64("track_faults", m.TrackFaults).
		Msg("bounce done")
	return int64(enc.Frames()), nil
}

// BounceFile is Bounce into a new file at path.
func BounceFile(ctx context.Context, s *Session, reg *source.Registry, path string, opts BounceOptions) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("bounce: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("bounce: %w", cerr)
		}
	}()

	return Bounce(ctx, s, reg, f, opts)
}

// Longest returns the length in frames of the longest track buffer.
func Longest(tracks []*mix.Track) int64 {
	var n int64
	for _, t := range tracks {
		n = max(n, int64(len(t.Buffer())))
	}
	return n
}
