// Package cli defines the ccnudge command surface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ccnudge",
	Short: "Desktop notifier for coding-assistant CLI events.",
	Long: `ccnudge reacts to coding-assistant hook events (stop, tool_complete,
permission, error) by locating the terminal window the session runs in,
applying a visual highlight, and playing a sound cue.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the global config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "mirror log records to stderr")
}

// Execute runs the command tree and maps errors to a process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ccnudge: %v\n", err)
		return 1
	}
	return 0
}
