// Package config loads, merges, validates, and persists ccnudge
// configuration. Merge order: compiled defaults, then the global config
// file, then the project config file, then CCNUDGE_* environment variables.
package config

// Config is the fully merged configuration tree.
type Config struct {
	// Enabled is the master switch for all notifications.
	Enabled bool `koanf:"enabled"`
	// SoundEnabled and HighlightEnabled gate the two channels globally;
	// per-event settings narrow them further.
	SoundEnabled     bool `koanf:"sound_enabled"`
	HighlightEnabled bool `koanf:"highlight_enabled"`

	// SoundDir overrides the default notification asset directory.
	SoundDir string `koanf:"sound_dir"`

	Events map[string]EventConfig `koanf:"events" validate:"dive"`
	Finder FinderConfig           `koanf:"finder"`
}

// EventConfig is the per-event-kind notification policy.
type EventConfig struct {
	Enabled       bool   `koanf:"enabled"`
	Sound         bool   `koanf:"sound"`
	Highlight     bool   `koanf:"highlight"`
	FlashCount    int    `koanf:"flash_count" validate:"min=0"`
	HighlightMode string `koanf:"highlight_mode" validate:"oneof=flash topmost focus all"`
	SoundFile     string `koanf:"sound_file"`
}

// FinderConfig carries the window-matching policy knobs.
type FinderConfig struct {
	// TerminalTitles are substrings a candidate title must contain one of.
	TerminalTitles []string `koanf:"terminal_titles"`
	// DenyTitles disqualify a window outright.
	DenyTitles []string `koanf:"deny_titles"`
	// TerminalProcs are executable names of known terminal hosts.
	TerminalProcs []string `koanf:"terminal_procs"`
}
