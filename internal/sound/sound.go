// Package sound resolves notification event kinds to audio assets and plays
// them on an independent execution path. Playback never fails upward: a
// missing or broken asset degrades to a generic asset, then a synthesized
// beep, then the terminal bell.
package sound

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/hmori/ccnudge/internal/event"
)

// genericAsset is the catch-all cue used when no event-specific file exists.
const genericAsset = "notice.mp3"

// assetNames maps event kinds to their preferred cue files.
var assetNames = map[event.Kind]string{
	event.KindStop:         "complete.mp3",
	event.KindToolComplete: "tool_complete.mp3",
	event.KindPermission:   "permission.mp3",
	event.KindError:        "error.mp3",
}

// players are tried in order when an asset file exists.
var players = [][]string{
	{"pw-play", "--media-role", "Notification"},
	{"paplay"},
}

// Player resolves and plays audio cues from one asset directory.
type Player struct {
	dir    string
	logger *slog.Logger

	// beep is the no-asset fallback, replaceable in tests.
	beep func()
}

// New builds a Player over dir; an empty dir selects the default asset path.
func New(dir string, logger *slog.Logger) *Player {
	if dir == "" {
		dir = DefaultDir()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Player{dir: dir, logger: logger}
	p.beep = p.systemBeep
	return p
}

// DefaultDir selects XDG_DATA_HOME when available, otherwise ~/.local/share.
func DefaultDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "ccnudge", "sounds")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "ccnudge", "sounds")
}

// Dir returns the resolved asset directory.
func (p *Player) Dir() string {
	return p.dir
}

// ResolveAsset maps an event kind to a playable asset path. A custom path
// overrides the lookup entirely. Otherwise the event-specific file wins,
// then the generic asset; an empty result selects the beep path.
func (p *Player) ResolveAsset(kind event.Kind, custom string) string {
	if expanded := expandUserPath(custom); expanded != "" {
		return expanded
	}

	name, ok := assetNames[kind]
	if !ok {
		name = genericAsset
	}

	path := filepath.Join(p.dir, name)
	if _, err := os.Stat(path); err == nil {
		return path
	}

	fallback := filepath.Join(p.dir, genericAsset)
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}

	return ""
}

// Play resolves and plays the cue for kind, degrading through the fallback
// chain on any failure. It blocks until playback settles.
func (p *Player) Play(ctx context.Context, kind event.Kind, custom string) {
	path := p.ResolveAsset(kind, custom)
	if path == "" {
		p.logger.Debug("no sound asset, using beep", "kind", string(kind))
		p.beep()
		return
	}

	if err := p.playFile(ctx, path); err != nil {
		p.logger.Warn("sound playback failed, using beep", "asset", path, "error", err.Error())
		p.beep()
		return
	}
	p.logger.Debug("sound played", "asset", path)
}

// PlayAsync starts playback on its own goroutine and returns a channel that
// closes when the cue settles. The orchestrator joins on it with a bounded
// wait so a stuck audio backend can never hang a notification cycle.
func (p *Player) PlayAsync(ctx context.Context, kind event.Kind, custom string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Play(ctx, kind, custom)
	}()
	return done
}

// playFile tries each known player binary in order.
func (p *Player) playFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat sound asset %q: %w", path, err)
	}

	playCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	var lastErr error
	for _, argv := range players {
		cmd := exec.CommandContext(playCtx, argv[0], append(argv[1:], path)...)
		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("%s %q: %w", argv[0], path, err)
			continue
		}
		return nil
	}
	return lastErr
}

// systemBeep plays a synthesized tone through the audio server, falling
// back to the cross-platform beep and finally the terminal bell.
func (p *Player) systemBeep() {
	if err := playSynthBeep(); err == nil {
		return
	}
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err == nil {
		return
	}
	fmt.Fprint(os.Stdout, "\a")
}

func expandUserPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if raw == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return raw
		}
		return home
	}
	if !strings.HasPrefix(raw, "~/") {
		return raw
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return raw
	}
	return filepath.Join(home, strings.TrimPrefix(raw, "~/"))
}
