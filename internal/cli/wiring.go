package cli

import (
	"context"
	"log/slog"

	"github.com/hmori/ccnudge/internal/config"
	"github.com/hmori/ccnudge/internal/event"
	"github.com/hmori/ccnudge/internal/finder"
	"github.com/hmori/ccnudge/internal/highlight"
	"github.com/hmori/ccnudge/internal/notify"
	"github.com/hmori/ccnudge/internal/proc"
	"github.com/hmori/ccnudge/internal/sound"
	"github.com/hmori/ccnudge/internal/x11"
)

// windowRegistry adapts the x11 package to the finder's Registry interface.
type windowRegistry struct{}

func (windowRegistry) ListWindows(ctx context.Context) ([]x11.Descriptor, error) {
	return x11.ListWindows(ctx)
}

func (windowRegistry) CurrentTerminalWindow() (x11.Handle, bool) {
	return x11.CurrentTerminalWindow()
}

// processTree adapts the proc package to the finder's Tree interface.
type processTree struct{}

func (processTree) Ancestors(maxDepth int) []proc.Ancestor {
	return proc.Ancestors(maxDepth)
}

func (processTree) ExecutableName(pid int) (string, bool) {
	return proc.ExecutableName(pid)
}

// windowMutator adapts the x11 package to the highlight and notify slices.
type windowMutator struct{}

func (windowMutator) IsViewable(ctx context.Context, h x11.Handle) bool {
	return x11.IsViewable(ctx, h)
}

func (windowMutator) SetDemandsAttention(ctx context.Context, h x11.Handle, on bool) error {
	return x11.SetDemandsAttention(ctx, h, on)
}

func (windowMutator) SetAbove(ctx context.Context, h x11.Handle, on bool) error {
	return x11.SetAbove(ctx, h, on)
}

func (windowMutator) Activate(ctx context.Context, h x11.Handle) error {
	return x11.Activate(ctx, h)
}

func (windowMutator) Focus(ctx context.Context, h x11.Handle) error {
	return x11.Focus(ctx, h)
}

// loadConfig merges the global file, the project file for workdir, and the
// environment on top of defaults.
func loadConfig(workdir string) (config.Loaded, error) {
	globalPath, err := config.GlobalPath(flagConfig)
	if err != nil {
		return config.Loaded{}, err
	}
	return config.Load(globalPath, config.ProjectPath(workdir))
}

// runCycle assembles the production collaborators and runs one cycle.
func runCycle(ctx context.Context, logger *slog.Logger, res config.Resolved, ec event.Context) int {
	rules := finder.Rules{
		TerminalTitles: res.Finder.TerminalTitles,
		DenyTitles:     res.Finder.DenyTitles,
		TerminalProcs:  res.Finder.TerminalProcs,
	}

	f := finder.New(windowRegistry{}, processTree{}, rules, logger)
	fx := highlight.New(windowMutator{}, logger)
	cues := sound.New(res.SoundDir, logger)

	return notify.New(f, windowMutator{}, fx, cues, logger).Execute(ctx, res, ec)
}
