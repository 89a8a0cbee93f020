package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmori/ccnudge/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment ccnudge depends on.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		workdir, _ := os.Getwd()
		loaded, err := loadConfig(workdir)
		if err != nil {
			return err
		}

		report := doctor.Run(loaded)
		fmt.Fprintln(cmd.OutOrStdout(), report.String())
		if !report.OK() {
			return fmt.Errorf("%d check(s) failed", failCount(report))
		}
		return nil
	},
}

func failCount(report doctor.Report) int {
	n := 0
	for _, check := range report.Checks {
		if !check.Pass {
			n++
		}
	}
	return n
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
