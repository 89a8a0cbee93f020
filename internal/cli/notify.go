package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hmori/ccnudge/internal/config"
	"github.com/hmori/ccnudge/internal/event"
	"github.com/hmori/ccnudge/internal/logging"
)

var notifyCmd = &cobra.Command{
	Use:   "notify <stop|tool_complete|permission|error>",
	Short: "Run one notification cycle for an event kind.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := event.ParseKind(args[0])
		if err != nil {
			return err
		}

		workdir, _ := cmd.Flags().GetString("workdir")
		if workdir == "" {
			workdir, _ = os.Getwd()
		}
		toolName, _ := cmd.Flags().GetString("tool-name")

		return runNotify(cmd, event.Context{Kind: kind, Workdir: workdir, ToolName: toolName})
	},
}

func init() {
	notifyCmd.Flags().String("workdir", "", "project directory used for window matching")
	notifyCmd.Flags().String("tool-name", "", "tool name associated with the event")
	notifyCmd.Flags().Bool("sound", false, "force the sound cue on or off")
	notifyCmd.Flags().Bool("highlight", false, "force the highlight on or off")
	notifyCmd.Flags().Int("flash-count", 0, "number of flash cycles")
	notifyCmd.Flags().String("mode", "", "highlight mode: flash, topmost, focus, all")
	notifyCmd.Flags().String("sound-file", "", "custom sound asset path")
	rootCmd.AddCommand(notifyCmd)
}

// runNotify is the shared cycle driver behind notify and hook. Degradations
// after logger setup are logged and swallowed; a notifier that fails its
// caller is worse than a silent one.
func runNotify(cmd *cobra.Command, ec event.Context) error {
	rt, err := logging.New(flagVerbose)
	if err != nil {
		return err
	}
	defer rt.Close()
	logger := rt.Logger

	loaded, err := loadConfig(ec.Workdir)
	if err != nil {
		logger.Error("config load failed, using defaults", "error", err.Error())
		loaded = config.Loaded{Config: config.Default()}
	}

	res := config.Resolve(loaded.Config, ec.Kind, overridesFrom(cmd))
	runCycle(cmd.Context(), logger, res, ec)
	return nil
}

// overridesFrom lifts only the flags the user actually set.
func overridesFrom(cmd *cobra.Command) config.Overrides {
	ov := config.Overrides{}
	flags := cmd.Flags()

	if flags.Changed("sound") {
		v, _ := flags.GetBool("sound")
		ov.Sound = &v
	}
	if flags.Changed("highlight") {
		v, _ := flags.GetBool("highlight")
		ov.Highlight = &v
	}
	if flags.Changed("flash-count") {
		v, _ := flags.GetInt("flash-count")
		ov.FlashCount = &v
	}
	if flags.Changed("mode") {
		ov.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("sound-file") {
		ov.SoundFile, _ = flags.GetString("sound-file")
	}
	return ov
}
