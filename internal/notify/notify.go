// Package notify runs one notification cycle: resolve policy, discover the
// target window, then fan out the sound cue and the highlight effect
// concurrently. The cycle never fails upward; a hook invocation that exits
// non-zero would surface as an assistant error, so every degradation is
// logged and swallowed.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/hmori/ccnudge/internal/config"
	"github.com/hmori/ccnudge/internal/event"
	"github.com/hmori/ccnudge/internal/fsm"
	"github.com/hmori/ccnudge/internal/highlight"
	"github.com/hmori/ccnudge/internal/x11"
)

// WindowFinder is the discovery slice of the finder package.
type WindowFinder interface {
	Find(ctx context.Context, ec event.Context) (x11.Handle, bool)
}

// WindowProber re-validates a handle between discovery and use.
type WindowProber interface {
	IsViewable(ctx context.Context, h x11.Handle) bool
}

// Effector is the effect slice of the highlight package.
type Effector interface {
	Highlight(ctx context.Context, h x11.Handle, mode highlight.Mode, flashCount int) bool
}

// CuePlayer is the playback slice of the sound package.
type CuePlayer interface {
	PlayAsync(ctx context.Context, kind event.Kind, custom string) <-chan struct{}
}

// defaultJoinTimeout bounds the wait for the background sound path.
const defaultJoinTimeout = 10 * time.Second

// Orchestrator wires discovery, highlighting, and sound into one cycle.
type Orchestrator struct {
	finder WindowFinder
	window WindowProber
	fx     Effector
	cues   CuePlayer
	logger *slog.Logger

	// JoinTimeout caps how long a cycle waits for playback to settle.
	JoinTimeout time.Duration
}

// New builds an Orchestrator. A nil logger disables diagnostics.
func New(finder WindowFinder, window WindowProber, fx Effector, cues CuePlayer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		finder:      finder,
		window:      window,
		fx:          fx,
		cues:        cues,
		logger:      logger,
		JoinTimeout: defaultJoinTimeout,
	}
}

// Execute runs one notification cycle and always returns exit status 0.
func (o *Orchestrator) Execute(ctx context.Context, res config.Resolved, ec event.Context) int {
	state := fsm.StateIdle
	o.step(&state, fsm.EventResolve)

	if !res.Enabled || (!res.Sound && !res.Highlight) {
		o.step(&state, fsm.EventSkip)
		o.logger.Info("notification skipped",
			"kind", string(ec.Kind),
			"enabled", res.Enabled,
			"sound", res.Sound,
			"highlight", res.Highlight,
		)
		return 0
	}

	o.step(&state, fsm.EventSearch)

	var handle x11.Handle
	found := false
	if res.Highlight {
		handle, found = o.finder.Find(ctx, ec)
	}
	if found {
		o.step(&state, fsm.EventHit)
		if !o.window.IsViewable(ctx, handle) {
			o.logger.Warn("resolved window went stale before use", "handle", string(handle))
			o.step(&state, fsm.EventStale)
			found = false
		}
	} else {
		o.step(&state, fsm.EventMiss)
	}

	if !res.Sound && !found {
		o.step(&state, fsm.EventFinish)
		o.logger.Info("nothing to dispatch", "kind", string(ec.Kind))
		return 0
	}

	o.step(&state, fsm.EventDispatch)

	var soundDone <-chan struct{}
	if res.Sound {
		soundDone = o.cues.PlayAsync(ctx, ec.Kind, res.SoundFile)
	}

	if found {
		mode, err := highlight.ParseMode(res.Mode)
		if err != nil {
			o.logger.Warn("unrecognized highlight mode, using flash", "mode", res.Mode)
			mode = highlight.ModeFlash
		}
		ok := o.fx.Highlight(ctx, handle, mode, res.FlashCount)
		o.logger.Info("highlight dispatched",
			"handle", string(handle),
			"mode", string(mode),
			"applied", ok,
		)
	}

	o.step(&state, fsm.EventJoin)
	if soundDone != nil {
		select {
		case <-soundDone:
		case <-time.After(o.JoinTimeout):
			o.logger.Warn("sound path did not settle in time", "timeout", o.JoinTimeout.String())
		case <-ctx.Done():
		}
	}

	o.step(&state, fsm.EventFinish)
	o.logger.Info("notification cycle complete", "kind", string(ec.Kind))
	return 0
}

// step advances the lifecycle, logging and holding position on a rejected
// transition rather than aborting the cycle.
func (o *Orchestrator) step(state *fsm.State, ev fsm.Event) {
	next, err := fsm.Transition(*state, ev)
	if err != nil {
		o.logger.Error("lifecycle transition rejected",
			"state", string(*state),
			"event", string(ev),
			"error", err.Error(),
		)
		return
	}
	*state = next
}
