package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hmori/ccnudge/internal/event"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Consume an assistant hook payload on stdin and notify.",
	Long: `hook reads one JSON hook payload from stdin, maps it to an event
kind, and runs a notification cycle. It always exits 0 so a notifier
problem can never surface as an assistant error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ec, err := event.DecodeHookPayload(cmd.InOrStdin())
		if err != nil {
			// Malformed payloads still get a default cue.
			ec = event.Context{Kind: event.KindStop}
		}
		if ec.Workdir == "" {
			ec.Workdir, _ = os.Getwd()
		}

		// Degradations inside the cycle are logged, never returned.
		_ = runNotify(cmd, ec)
		return nil
	},
}

func init() {
	hookCmd.Flags().Bool("sound", false, "force the sound cue on or off")
	hookCmd.Flags().Bool("highlight", false, "force the highlight on or off")
	hookCmd.Flags().Int("flash-count", 0, "number of flash cycles")
	hookCmd.Flags().String("mode", "", "highlight mode: flash, topmost, focus, all")
	hookCmd.Flags().String("sound-file", "", "custom sound asset path")
	rootCmd.AddCommand(hookCmd)
}
