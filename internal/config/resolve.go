package config

import "github.com/hmori/ccnudge/internal/event"

// Overrides carries CLI flag values that beat every config layer.
type Overrides struct {
	Sound      *bool
	Highlight  *bool
	FlashCount *int
	Mode       string
	SoundFile  string
}

// Resolved is the flattened per-cycle notification policy.
type Resolved struct {
	Enabled    bool
	Sound      bool
	Highlight  bool
	FlashCount int
	Mode       string
	SoundFile  string
	SoundDir   string
	Finder     FinderConfig
}

// Event returns the policy for an event kind, falling back to a stock
// policy for kinds missing from the merged map.
func (c Config) Event(kind event.Kind) EventConfig {
	if ev, ok := c.Events[string(kind)]; ok {
		return ev
	}
	return defaultEvent()
}

// Resolve flattens the config tree and applies flag overrides for one
// notification cycle. Global switches gate the per-event ones.
func Resolve(cfg Config, kind event.Kind, ov Overrides) Resolved {
	ev := cfg.Event(kind)

	r := Resolved{
		Enabled:    cfg.Enabled && ev.Enabled,
		Sound:      cfg.SoundEnabled && ev.Sound,
		Highlight:  cfg.HighlightEnabled && ev.Highlight,
		FlashCount: ev.FlashCount,
		Mode:       ev.HighlightMode,
		SoundFile:  ev.SoundFile,
		SoundDir:   cfg.SoundDir,
		Finder:     cfg.Finder,
	}

	if ov.Sound != nil {
		r.Sound = *ov.Sound
	}
	if ov.Highlight != nil {
		r.Highlight = *ov.Highlight
	}
	if ov.FlashCount != nil {
		r.FlashCount = *ov.FlashCount
	}
	if ov.Mode != "" {
		r.Mode = ov.Mode
	}
	if ov.SoundFile != "" {
		r.SoundFile = ov.SoundFile
	}

	if !r.Enabled {
		r.Sound = false
		r.Highlight = false
	}
	return r
}
