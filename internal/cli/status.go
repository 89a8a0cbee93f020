package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the merged configuration and where each value came from.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		workdir, _ := os.Getwd()
		loaded, err := loadConfig(workdir)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), loaded.Summary())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
