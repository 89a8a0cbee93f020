package config

// Default returns the canonical configuration used when no file is present.
func Default() Config {
	return Config{
		Enabled:          true,
		SoundEnabled:     true,
		HighlightEnabled: true,
		Events: map[string]EventConfig{
			"stop": {
				Enabled: true, Sound: true, Highlight: true,
				FlashCount: 5, HighlightMode: "flash",
			},
			"tool_complete": {
				Enabled: true, Sound: true, Highlight: true,
				FlashCount: 3, HighlightMode: "flash",
			},
			"permission": {
				Enabled: true, Sound: false, Highlight: true,
				FlashCount: 0, HighlightMode: "focus",
			},
			"error": {
				Enabled: true, Sound: true, Highlight: true,
				FlashCount: 5, HighlightMode: "flash",
			},
		},
		Finder: FinderConfig{
			TerminalTitles: []string{
				"claude", "terminal", "konsole", "alacritty", "kitty",
				"wezterm", "ghostty", "foot", "xterm", "tmux",
			},
			DenyTitles: []string{
				"chrome", "chromium", "firefox", "nautilus", "dolphin",
				"thunar", "files", "desktop", "panel", "dock", "settings",
			},
			TerminalProcs: []string{
				"kitty", "alacritty", "konsole", "gnome-terminal-server",
				"wezterm-gui", "ghostty", "foot", "xterm", "urxvt",
				"xfce4-terminal", "tilix",
			},
		},
	}
}

// defaultEvent backs event kinds absent from the merged events map.
func defaultEvent() EventConfig {
	return EventConfig{
		Enabled: true, Sound: true, Highlight: true,
		FlashCount: 5, HighlightMode: "flash",
	}
}
