// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/backend/portaudio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List PortAudio devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := portaudio.Devices()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHOST API\tIN\tOUT\tRATE\tLOW LATENCY")
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%.1fms\n",
				d.Name, d.HostAPI, d.MaxInputChannels, d.MaxOutputChannels,
				d.DefaultSampleRate, d.LowOutputLatency*1000)
		}
		return w.Flush()
	},
}
