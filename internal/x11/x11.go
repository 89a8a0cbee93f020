// Package x11 wraps the EWMH window primitives ccnudge needs: enumeration,
// validity checks, and the flash/topmost/focus mutations. All access goes
// through wmctrl, xdotool, and xprop so the package stays free of display
// connections and per-call state.
package x11

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Handle is an opaque top-level window id, normalized to 0x%08x form.
type Handle string

// Rect is a window bounding rectangle in screen coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Area returns the rectangle surface used for main-window tie-breaking.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Descriptor is one enumerated window. Descriptors are produced fresh on
// every enumeration call; titles and geometry change live and must not be
// cached across cycles.
type Descriptor struct {
	Handle  Handle
	Desktop int
	PID     int
	Rect    Rect
	Title   string
}

// NormalizeHandle parses a decimal or hex window id into canonical form.
func NormalizeHandle(raw string) (Handle, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty window id")
	}
	id, err := strconv.ParseUint(trimmed, 0, 64)
	if err != nil {
		return "", fmt.Errorf("parse window id %q: %w", raw, err)
	}
	return Handle(fmt.Sprintf("0x%08x", id)), nil
}

// ListWindows enumerates every managed top-level window with ownership and
// geometry. Malformed listing lines are skipped, never fatal.
func ListWindows(ctx context.Context) ([]Descriptor, error) {
	out, err := runToolOutput(ctx, "wmctrl", "-lpG")
	if err != nil {
		return nil, err
	}
	return parseWindowList(string(out)), nil
}

// parseWindowList decodes `wmctrl -lpG` output:
//
//	0x04000007 0 4242 24 24 1280 720 host title words...
func parseWindowList(out string) []Descriptor {
	var windows []Descriptor
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}

		handle, err := NormalizeHandle(fields[0])
		if err != nil {
			continue
		}
		desktop, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		pid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}

		var geom [4]int
		ok := true
		for i := range 4 {
			geom[i], err = strconv.Atoi(fields[3+i])
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		title := ""
		if len(fields) > 8 {
			title = strings.Join(fields[8:], " ")
		}

		windows = append(windows, Descriptor{
			Handle:  handle,
			Desktop: desktop,
			PID:     pid,
			Rect:    Rect{X: geom[0], Y: geom[1], W: geom[2], H: geom[3]},
			Title:   strings.TrimSpace(title),
		})
	}
	return windows
}

// ActiveWindow returns the current foreground window handle.
func ActiveWindow(ctx context.Context) (Handle, error) {
	out, err := runToolOutput(ctx, "xdotool", "getactivewindow")
	if err != nil {
		return "", err
	}
	return NormalizeHandle(string(out))
}

// Title fetches the current title of one window.
func Title(ctx context.Context, h Handle) (string, error) {
	out, err := runToolOutput(ctx, "xdotool", "getwindowname", string(h))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// IsViewable reports whether the handle still names a mapped window. Every
// consumer re-validates immediately before acting; the window may close
// between resolution and use.
func IsViewable(ctx context.Context, h Handle) bool {
	out, err := runToolOutput(ctx, "xprop", "-id", string(h), "WM_STATE")
	if err != nil {
		return false
	}
	return strings.Contains(string(out), "Normal")
}

// CurrentTerminalWindow returns the window of the controlling terminal when
// the environment advertises one. Hook invocations spawned without a
// terminal have no WINDOWID.
func CurrentTerminalWindow() (Handle, bool) {
	raw := strings.TrimSpace(os.Getenv("WINDOWID"))
	if raw == "" {
		return "", false
	}
	handle, err := NormalizeHandle(raw)
	if err != nil {
		return "", false
	}
	return handle, true
}

// SetDemandsAttention toggles the EWMH attention hint, the flash primitive.
// Setting the hint is asynchronous: the window manager keeps the taskbar
// entry flashing until the hint is cleared or the window takes focus.
func SetDemandsAttention(ctx context.Context, h Handle, on bool) error {
	return setWindowState(ctx, h, "demands_attention", on)
}

// SetAbove toggles the always-on-top state without moving or activating.
func SetAbove(ctx context.Context, h Handle, on bool) error {
	return setWindowState(ctx, h, "above", on)
}

func setWindowState(ctx context.Context, h Handle, state string, on bool) error {
	verb := "add"
	if !on {
		verb = "remove"
	}
	return runTool(ctx, "wmctrl", "-i", "-r", string(h), "-b", verb+","+state)
}

// Activate asks the window manager to focus the window, switching desktops
// if needed. Some window managers refuse focus stealing here; callers fall
// back to Focus.
func Activate(ctx context.Context, h Handle) error {
	return runTool(ctx, "wmctrl", "-i", "-a", string(h))
}

// Focus is the simplified input-focus retry used when activation fails.
func Focus(ctx context.Context, h Handle) error {
	return runTool(ctx, "xdotool", "windowfocus", string(h))
}

func runTool(ctx context.Context, name string, args ...string) error {
	_, err := runToolOutput(ctx, name, args...)
	return err
}

func runToolOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return nil, fmt.Errorf("%s %v failed: %w", name, args, err)
		}
		return nil, fmt.Errorf("%s %v failed: %w (%s)", name, args, err, trimmed)
	}
	return out, nil
}
