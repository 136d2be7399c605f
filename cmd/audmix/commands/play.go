// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/backend/oto"
	"github.com/ik5/audmix/backend/portaudio"
	"github.com/ik5/audmix/engine"
	"github.com/ik5/audmix/formats/wav"
)

var (
	playBackend   string
	playDuration  time.Duration
	playRecord    bool
	playTakeDir   string
	playStatsTick time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play <session.yaml>",
	Short: "Play a session on an audio device",
	Long: `Play a session through a real-time output stream.

Playback stops at the end of the longest track, after --duration, or on
Ctrl-C. With --record the default input device is captured for as long as
playback runs and the take is written as take-<uuid>.wav. Recording needs
the portaudio backend and engine.input_channels set in the session.

Examples:
  audmix play song.yaml
  audmix play song.yaml --backend oto --duration 30s
  audmix play song.yaml --record --take-dir takes/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := audmix.LoadSession(args[0])
		if err != nil {
			return err
		}

		backend, err := newBackend(playBackend)
		if err != nil {
			return err
		}

		eng := engine.New(backend, engine.WithConfig(s.Engine), engine.WithLogger(log))
		defer func() {
			if err := eng.Close(); err != nil {
				log.Warn().Err(err).Msg("close engine")
			}
		}()

		if err := eng.Initialize(); err != nil {
			return err
		}
		ids, err := s.Apply(eng, audmix.NewRegistry())
		if err != nil {
			return err
		}
		log.Info().Int("tracks", len(ids)).Str("session", args[0]).Msg("session loaded")

		length := playDuration
		if length == 0 {
			frames := audmix.Longest(eng.Tracks())
			length = time.Duration(frames) * time.Second / time.Duration(s.Engine.SampleRate)
		}

		if playRecord {
			if err := eng.StartRecording(); err != nil {
				return fmt.Errorf("record: %w", err)
			}
		}
		if err := eng.StartPlayback(); err != nil {
			return err
		}

		waitPlayback(cmd, eng, length)

		if err := eng.StopPlayback(); err != nil {
			return err
		}
		if playRecord {
			return saveTake(eng)
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringVarP(&playBackend, "backend", "b", "portaudio", "audio backend (portaudio, oto)")
	playCmd.Flags().DurationVarP(&playDuration, "duration", "d", 0, "playback length (default is the longest track)")
	playCmd.Flags().BoolVarP(&playRecord, "record", "r", false, "record the default input while playing")
	playCmd.Flags().StringVar(&playTakeDir, "take-dir", ".", "directory for recorded takes")
	playCmd.Flags().DurationVar(&playStatsTick, "stats", 0, "log engine metrics at this interval (0 disables)")
}

func newBackend(name string) (engine.Backend, error) {
	switch name {
	case "portaudio":
		return portaudio.Backend{}, nil
	case "oto":
		return oto.Backend{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// waitPlayback blocks until length has played or the command is canceled.
func waitPlayback(cmd *cobra.Command, eng *engine.Engine, length time.Duration) {
	done := time.NewTimer(length)
	defer done.Stop()

	var tick <-chan time.Time
	if playStatsTick > 0 {
		t := time.NewTicker(playStatsTick)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-cmd.Context().Done():
			log.Info().Msg("interrupted")
			return
		case <-done.C:
			return
		case <-tick:
			m := eng.Metrics()
			log.Info().
				Int64("position", m.Position).
				Uint64("callbacks", m.Callbacks).
				Uint64("overruns", m.Overruns).
				Float64("load", m.Load).
				Uint64("track_faults", m.TrackFaults).
				Int("tracks", m.ActiveTracks).
				Msg("engine")
		}
	}
}

func saveTake(eng *engine.Engine) error {
	samples, err := eng.StopRecording()
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	cfg := eng.Config()
	if len(samples) == 0 {
		return errors.New("record: take is empty")
	}

	if err := os.MkdirAll(playTakeDir, 0o755); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	path := filepath.Join(playTakeDir, "take-"+uuid.NewString()+".wav")
	if err := wav.WriteFile(path, cfg.SampleRate, cfg.InputChannels, 16, samples); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("frames", len(samples)/cfg.InputChannels).
		Uint64("dropped", eng.Metrics().DroppedInput).
		Msg("take saved")
	return nil
}
