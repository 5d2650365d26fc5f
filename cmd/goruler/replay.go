package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goruler/internal/replay"
	"github.com/philipparndt/goruler/pkg/ruler"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a tap script against a headless session",
	Long: `Replay a tap script line by line and print every marker and label change.
Use "-" to read the script from stdin.

Script lines:
  tap <x> <y> <z>   a tap that hit the feature point at x, y, z (meters)
  miss              a tap that hit no feature point
  clear             tear the session down`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	steps, err := replay.Parse(in)
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	out := cmd.OutOrStdout()
	sink := replay.NewConsoleSink(out)
	session := ruler.NewSession(
		ruler.WithLogger(logger),
		ruler.WithMarkerSink(sink),
		ruler.WithLabelSink(sink),
	)

	summary := replay.Run(steps, session, out)
	fmt.Fprintf(out, "\n%d taps, %d misses, %d measurements\n", summary.Taps, summary.Misses, summary.Measurements)
	return nil
}
