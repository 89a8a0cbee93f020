package config

import (
	"fmt"
	"sort"
	"strings"
)

// Summary renders the merged configuration with per-key source
// attribution, for the status subcommand.
func (l Loaded) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "global config:  %s%s\n", l.GlobalPath, missingSuffix(l.GlobalExists))
	projectPath := l.ProjectPath
	if projectPath == "" {
		projectPath = "(none)"
	}
	fmt.Fprintf(&b, "project config: %s%s\n\n", projectPath, missingSuffix(l.ProjectExists || l.ProjectPath == ""))

	fmt.Fprintf(&b, "enabled:           %-3s  (%s)\n", onOff(l.Config.Enabled), l.Source("enabled"))
	fmt.Fprintf(&b, "sound_enabled:     %-3s  (%s)\n", onOff(l.Config.SoundEnabled), l.Source("sound_enabled"))
	fmt.Fprintf(&b, "highlight_enabled: %-3s  (%s)\n\n", onOff(l.Config.HighlightEnabled), l.Source("highlight_enabled"))

	names := make([]string, 0, len(l.Config.Events))
	for name := range l.Config.Events {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(&b, "%-15s %-8s %-6s %-10s %-6s %s\n",
		"event", "enabled", "sound", "highlight", "flash", "mode")
	for _, name := range names {
		ev := l.Config.Events[name]
		fmt.Fprintf(&b, "%-15s %-8s %-6s %-10s %-6d %s\n",
			name, onOff(ev.Enabled), onOff(ev.Sound), onOff(ev.Highlight),
			ev.FlashCount, ev.HighlightMode)
	}

	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func missingSuffix(exists bool) string {
	if exists {
		return ""
	}
	return "  (not found)"
}
