// Package finder resolves the terminal window a notification should target.
//
// The process emitting the notification is a hook child of the assistant
// CLI, not the terminal itself, so there is no direct handle to "the window
// the user is watching". Discovery runs an ordered strategy cascade instead,
// each strategy tried only when the previous one yields nothing.
package finder

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hmori/ccnudge/internal/event"
	"github.com/hmori/ccnudge/internal/proc"
	"github.com/hmori/ccnudge/internal/x11"
)

// Registry is the window-enumeration slice of the x11 package.
type Registry interface {
	ListWindows(ctx context.Context) ([]x11.Descriptor, error)
	CurrentTerminalWindow() (x11.Handle, bool)
}

// Tree is the process-ancestry slice of the proc package.
type Tree interface {
	Ancestors(maxDepth int) []proc.Ancestor
	ExecutableName(pid int) (string, bool)
}

// Rules carries the title and process matching policy. All matching is
// case-insensitive substring containment.
type Rules struct {
	// TerminalTitles are terms a title must contain at least one of.
	TerminalTitles []string
	// DenyTitles disqualify a window outright (browsers, file managers,
	// desktop shells, panels).
	DenyTitles []string
	// TerminalProcs are executable names of known terminal hosts.
	TerminalProcs []string
}

// minWorkdirComponent ignores short path components during title matching;
// two- and three-letter directory names hit too many unrelated titles.
const minWorkdirComponent = 4

type strategy func(ctx context.Context, ec event.Context) (x11.Handle, bool)

// Finder maps an event context to zero-or-one window handle.
type Finder struct {
	reg      Registry
	tree     Tree
	rules    Rules
	logger   *slog.Logger
	maxDepth int
}

// New builds a Finder. A nil logger disables diagnostics.
func New(reg Registry, tree Tree, rules Rules, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Finder{
		reg:      reg,
		tree:     tree,
		rules:    rules,
		logger:   logger,
		maxDepth: proc.DefaultMaxDepth,
	}
}

// Find runs the strategy cascade. A false result means no strategy matched;
// callers treat that as "cannot highlight" and still let sound proceed.
func (f *Finder) Find(ctx context.Context, ec event.Context) (x11.Handle, bool) {
	strategies := []struct {
		name string
		run  strategy
	}{
		{"console_window", f.consoleWindow},
		{"ancestor_window", f.ancestorWindow},
		{"process_name", f.processName},
		{"title_heuristic", f.titleHeuristic},
	}

	for _, s := range strategies {
		handle, ok := s.run(ctx, ec)
		if !ok {
			continue
		}
		f.logger.Info("window resolved", "strategy", s.name, "handle", string(handle))
		return handle, true
	}

	f.logger.Info("window discovery exhausted")
	return "", false
}

// consoleWindow resolves the controlling terminal of this process. A window
// with an empty title is a hidden console spawned for a background hook
// invocation and must be rejected, otherwise the highlight lands on an
// invisible window.
func (f *Finder) consoleWindow(ctx context.Context, _ event.Context) (x11.Handle, bool) {
	handle, ok := f.reg.CurrentTerminalWindow()
	if !ok {
		return "", false
	}

	windows, err := f.reg.ListWindows(ctx)
	if err != nil {
		f.logger.Debug("console window enumeration failed", "error", err.Error())
		return "", false
	}

	for _, w := range windows {
		if w.Handle != handle {
			continue
		}
		if w.Title == "" || f.denied(w.Title) {
			return "", false
		}
		return handle, true
	}
	return "", false
}

// ancestorWindow walks up the process tree and returns the largest titled
// window owned by the nearest ancestor that has one. Largest rectangle area
// approximates "the main window, not a tool palette".
func (f *Finder) ancestorWindow(ctx context.Context, _ event.Context) (x11.Handle, bool) {
	windows, err := f.reg.ListWindows(ctx)
	if err != nil {
		f.logger.Debug("ancestor window enumeration failed", "error", err.Error())
		return "", false
	}

	byPID := make(map[int][]x11.Descriptor, len(windows))
	for _, w := range windows {
		byPID[w.PID] = append(byPID[w.PID], w)
	}

	for _, ancestor := range f.tree.Ancestors(f.maxDepth) {
		var best x11.Descriptor
		found := false
		for _, w := range byPID[ancestor.PID] {
			if w.Title == "" || f.denied(w.Title) {
				continue
			}
			if !found || w.Rect.Area() > best.Rect.Area() {
				best = w
				found = true
			}
		}
		if found {
			f.logger.Debug("ancestor owns window",
				"pid", ancestor.PID,
				"executable", ancestor.Executable,
				"title", best.Title,
			)
			return best.Handle, true
		}
	}
	return "", false
}

// processName matches windows owned by known terminal-host executables.
// Enumeration order is whatever the window manager reports; the first match
// is an accepted approximation. Per-process lookup failures skip that
// window, never the scan.
func (f *Finder) processName(ctx context.Context, _ event.Context) (x11.Handle, bool) {
	if len(f.rules.TerminalProcs) == 0 {
		return "", false
	}

	windows, err := f.reg.ListWindows(ctx)
	if err != nil {
		f.logger.Debug("process name enumeration failed", "error", err.Error())
		return "", false
	}

	for _, w := range windows {
		exe, ok := f.tree.ExecutableName(w.PID)
		if !ok {
			continue
		}
		if !f.isTerminalProc(exe) {
			continue
		}
		if f.denied(w.Title) {
			continue
		}
		return w.Handle, true
	}
	return "", false
}

// titleHeuristic is the last resort: windows whose titles look like a
// terminal session. With a workdir hint, a window naming one of its path
// components wins over the first generic match.
func (f *Finder) titleHeuristic(ctx context.Context, ec event.Context) (x11.Handle, bool) {
	windows, err := f.reg.ListWindows(ctx)
	if err != nil {
		f.logger.Debug("title heuristic enumeration failed", "error", err.Error())
		return "", false
	}

	var qualifying []x11.Descriptor
	for _, w := range windows {
		if w.Title == "" {
			continue
		}
		if f.denied(w.Title) || !f.allowed(w.Title) {
			continue
		}
		qualifying = append(qualifying, w)
	}
	if len(qualifying) == 0 {
		return "", false
	}

	for _, component := range workdirComponents(ec.Workdir) {
		for _, w := range qualifying {
			if containsFold(w.Title, component) {
				return w.Handle, true
			}
		}
	}

	return qualifying[0].Handle, true
}

func (f *Finder) allowed(title string) bool {
	for _, term := range f.rules.TerminalTitles {
		if containsFold(title, term) {
			return true
		}
	}
	return false
}

func (f *Finder) denied(title string) bool {
	for _, term := range f.rules.DenyTitles {
		if containsFold(title, term) {
			return true
		}
	}
	return false
}

func (f *Finder) isTerminalProc(exe string) bool {
	for _, name := range f.rules.TerminalProcs {
		if strings.EqualFold(strings.TrimSpace(exe), name) {
			return true
		}
	}
	return false
}

// workdirComponents yields path components deepest-first, dropping
// components shorter than the false-positive floor.
func workdirComponents(workdir string) []string {
	workdir = strings.TrimSpace(workdir)
	if workdir == "" {
		return nil
	}

	var components []string
	remaining := filepath.Clean(workdir)
	for {
		base := filepath.Base(remaining)
		if base == "/" || base == "." || base == "" {
			break
		}
		if len(base) >= minWorkdirComponent {
			components = append(components, base)
		}
		parent := filepath.Dir(remaining)
		if parent == remaining {
			break
		}
		remaining = parent
	}
	return components
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
