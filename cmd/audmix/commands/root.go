// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logJSON  bool
	log      = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audmix",
	Short: "Real-time multi-track mixer",
	Long: `audmix mixes mono tracks into a stereo stream in real time.

A session file lists the tracks and their mix settings:
  engine:
    sample_rate: 44100
    frames_per_callback: 256
  master_volume: 0.8
  tracks:
    - name: drums
      path: drums.wav
      pan: -0.3
    - name: keys
      path: keys.ogg
      volume: 0.7`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log JSON lines instead of console output")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bounceCmd)
	rootCmd.AddCommand(devicesCmd)
}

func initLogger() error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	if logJSON {
		log = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		return nil
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}
