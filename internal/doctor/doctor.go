// Package doctor runs runtime readiness diagnostics for the display
// session, window tools, audio playback, config, and sound assets.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hmori/ccnudge/internal/config"
	"github.com/hmori/ccnudge/internal/event"
	"github.com/hmori/ccnudge/internal/sound"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(loaded config.Loaded) Report {
	checks := []Check{}

	configMsg := fmt.Sprintf("global %q", loaded.GlobalPath)
	if !loaded.GlobalExists {
		configMsg += " (defaults; file not found)"
	}
	checks = append(checks, Check{Name: "config", Pass: true, Message: configMsg})

	checks = append(checks, checkEnv("DISPLAY", func(v string) bool {
		return strings.TrimSpace(v) != ""
	}, "X display available", "DISPLAY is empty; window highlighting needs an X11 session"))

	checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
		v = strings.TrimSpace(v)
		return v == "" || strings.EqualFold(v, "x11")
	}, "session type is x11", "session is not x11; highlighting depends on XWayland"))

	for _, bin := range []string{"wmctrl", "xdotool", "xprop"} {
		checks = append(checks, checkBinary(bin, "window tool available"))
	}

	checks = append(checks, checkAnyBinary("audio.player", "pw-play", "paplay"))
	checks = append(checks, checkSoundAssets(loaded.Config.SoundDir))

	return Report{Checks: checks}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkAnyBinary passes when at least one of the candidates is in PATH.
func checkAnyBinary(name string, candidates ...string) Check {
	for _, bin := range candidates {
		if path, err := exec.LookPath(bin); err == nil {
			return Check{Name: name, Pass: true, Message: fmt.Sprintf("%s found at %s", bin, path)}
		}
	}
	return Check{
		Name:    name,
		Pass:    false,
		Message: fmt.Sprintf("none of %s found in PATH; cues degrade to a synthesized beep", strings.Join(candidates, ", ")),
	}
}

// checkSoundAssets inventories cue files without failing the report; a
// missing directory is a degraded-but-working setup.
func checkSoundAssets(dir string) Check {
	player := sound.New(dir, nil)

	var present, missing []string
	for _, kind := range event.Kinds() {
		if player.ResolveAsset(kind, "") != "" {
			present = append(present, string(kind))
		} else {
			missing = append(missing, string(kind))
		}
	}

	if len(missing) == 0 {
		return Check{
			Name:    "sound.assets",
			Pass:    true,
			Message: fmt.Sprintf("all cues present in %q", player.Dir()),
		}
	}
	return Check{
		Name: "sound.assets",
		Pass: true,
		Message: fmt.Sprintf("cues missing for %s in %q; those events beep instead",
			strings.Join(missing, ", "), player.Dir()),
	}
}
