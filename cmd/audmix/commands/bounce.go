// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
)

var (
	bounceOutput   string
	bounceBitDepth int
	bounceLength   time.Duration
	bounceTail     time.Duration
)

var bounceCmd = &cobra.Command{
	Use:   "bounce <session.yaml>",
	Short: "Render a session to a WAV file",
	Long: `Render a session offline, faster than real time, into a stereo WAV file.

By default the render covers the longest track.

Examples:
  audmix bounce song.yaml -o song.wav
  audmix bounce song.yaml -o song.wav --bit-depth 24 --tail 2s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := audmix.LoadSession(args[0])
		if err != nil {
			return err
		}

		rate := int64(s.Engine.SampleRate)
		opts := audmix.BounceOptions{
			BitDepth: bounceBitDepth,
			Frames:   int64(bounceLength.Seconds() * float64(rate)),
			Tail:     int64(bounceTail.Seconds() * float64(rate)),
			Logger:   &log,
		}

		start := time.Now()
		frames, err := audmix.BounceFile(cmd.Context(), s, audmix.NewRegistry(), bounceOutput, opts)
		if err != nil {
			return err
		}

		log.Info().
			Str("file", bounceOutput).
			Dur("length", time.Duration(frames)*time.Second/time.Duration(rate)).
			Dur("took", time.Since(start)).
			Msg("bounced")
		return nil
	},
}

func init() {
	bounceCmd.Flags().StringVarP(&bounceOutput, "output", "o", "bounce.wav", "output WAV file")
	bounceCmd.Flags().IntVar(&bounceBitDepth, "bit-depth", audmix.DefaultBitDepth, "WAV bit depth (16, 24 or 32)")
	bounceCmd.Flags().DurationVar(&bounceLength, "length", 0, "render length (default is the longest track)")
	bounceCmd.Flags().DurationVar(&bounceTail, "tail", 0, "silence appended after the render length")
}
