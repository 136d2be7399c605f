// SPDX-License-Identifier: EPL-2.0

// Command audmix plays, records and bounces multi-track sessions.
//
// Usage:
//
//	audmix [flags] <command> [args]
//
// Commands:
//
//	play     - Play a session on an audio device, optionally recording a take
//	bounce   - Render a session to a WAV file
//	devices  - List PortAudio devices
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audmix/cmd/audmix/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
