package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmori/ccnudge/internal/config"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Turn all notifications on.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeToggle(cmd, map[string]bool{"enabled": true}, "notifications enabled")
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Turn all notifications off.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeToggle(cmd, map[string]bool{"enabled": false}, "notifications disabled")
	},
}

var soundCmd = &cobra.Command{
	Use:       "sound <on|off>",
	Short:     "Toggle the sound channel.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return writeToggle(cmd, map[string]bool{"sound_enabled": on}, "sound "+args[0])
	},
}

var highlightCmd = &cobra.Command{
	Use:       "highlight <on|off>",
	Short:     "Toggle the window-highlight channel.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return writeToggle(cmd, map[string]bool{"highlight_enabled": on}, "highlight "+args[0])
	},
}

func init() {
	for _, c := range []*cobra.Command{enableCmd, disableCmd, soundCmd, highlightCmd} {
		c.Flags().Bool("global", false, "write to the global config instead of the project file")
		rootCmd.AddCommand(c)
	}
}

func parseOnOff(raw string) (bool, error) {
	switch raw {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", raw)
	}
}

// writeToggle persists boolean switches to the project config by default,
// or to the global config with --global.
func writeToggle(cmd *cobra.Command, changes map[string]bool, confirmation string) error {
	global, _ := cmd.Flags().GetBool("global")

	var path string
	if global {
		var err error
		path, err = config.GlobalPath(flagConfig)
		if err != nil {
			return err
		}
	} else {
		workdir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		path = config.ProjectPath(workdir)
	}

	if err := config.SetToggles(path, changes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", confirmation, path)
	return nil
}
