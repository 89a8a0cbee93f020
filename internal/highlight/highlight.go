// Package highlight applies transient visual attention effects to a window.
package highlight

import (
	"context"
	"log/slog"
	"time"

	"github.com/hmori/ccnudge/internal/x11"
)

// Mutator is the window-mutation slice of the x11 package.
type Mutator interface {
	IsViewable(ctx context.Context, h x11.Handle) bool
	SetDemandsAttention(ctx context.Context, h x11.Handle, on bool) error
	SetAbove(ctx context.Context, h x11.Handle, on bool) error
	Activate(ctx context.Context, h x11.Handle) error
	Focus(ctx context.Context, h x11.Handle) error
}

// Highlighter owns the timing and reset logic for transient effects. All
// operations report success as a bool; a stale or refused handle is a
// degraded outcome, not an error the caller must handle.
type Highlighter struct {
	win    Mutator
	logger *slog.Logger

	// FlashInterval is the sleep between basic flash toggles.
	FlashInterval time.Duration
	// EnhancedTimeout is the per-cycle duration of the enhanced flash.
	EnhancedTimeout time.Duration
	// SettleDelay separates focus from flash in the combined mode.
	SettleDelay time.Duration
	// TopmostRevert is how long a topmost elevation is allowed to live.
	TopmostRevert time.Duration
}

// New builds a Highlighter with production timings.
func New(win Mutator, logger *slog.Logger) *Highlighter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Highlighter{
		win:             win,
		logger:          logger,
		FlashInterval:   500 * time.Millisecond,
		EnhancedTimeout: 500 * time.Millisecond,
		SettleDelay:     100 * time.Millisecond,
		TopmostRevert:   3 * time.Second,
	}
}

// Flash toggles the attention hint count times with interval sleeps.
// Synchronous; blocks for roughly count*2*interval.
func (h *Highlighter) Flash(ctx context.Context, handle x11.Handle, count int) bool {
	for i := 0; i < count; i++ {
		if err := h.win.SetDemandsAttention(ctx, handle, true); err != nil {
			h.logger.Debug("flash toggle failed", "handle", string(handle), "error", err.Error())
			return false
		}
		h.sleep(ctx, h.FlashInterval)
		if err := h.win.SetDemandsAttention(ctx, handle, false); err != nil {
			h.logger.Debug("flash toggle failed", "handle", string(handle), "error", err.Error())
			return false
		}
		h.sleep(ctx, h.FlashInterval)
	}
	return true
}

// FlashEnhanced raises the attention hint once and lets the window manager
// animate it. The hint is asynchronous: exiting immediately would tear the
// effect down with the process, so the call blocks for the full expected
// duration (count*2*timeout) and then clears the hint itself. Falls back to
// Flash when the hint cannot be set.
func (h *Highlighter) FlashEnhanced(ctx context.Context, handle x11.Handle, count int) bool {
	if !h.win.IsViewable(ctx, handle) {
		h.logger.Warn("flash target no longer viewable", "handle", string(handle))
		return false
	}

	if err := h.win.SetDemandsAttention(ctx, handle, true); err != nil {
		h.logger.Debug("enhanced flash unavailable, using basic flash", "error", err.Error())
		return h.Flash(ctx, handle, count)
	}

	h.sleep(ctx, time.Duration(count)*2*h.EnhancedTimeout)

	if err := h.win.SetDemandsAttention(ctx, handle, false); err != nil {
		h.logger.Debug("clear attention hint failed", "handle", string(handle), "error", err.Error())
	}
	return true
}

// BringToFront requests input focus for the window. Window managers that
// refuse cross-client activation get one simplified focus retry.
func (h *Highlighter) BringToFront(ctx context.Context, handle x11.Handle) bool {
	if !h.win.IsViewable(ctx, handle) {
		h.logger.Warn("focus target no longer viewable", "handle", string(handle))
		return false
	}

	if err := h.win.Activate(ctx, handle); err != nil {
		h.logger.Debug("activate refused, retrying with plain focus", "error", err.Error())
		if err := h.win.Focus(ctx, handle); err != nil {
			h.logger.Debug("focus retry failed", "handle", string(handle), "error", err.Error())
			return false
		}
	}
	return true
}

// SetTopmost toggles the always-on-top state without moving, resizing, or
// activating the window.
func (h *Highlighter) SetTopmost(ctx context.Context, handle x11.Handle, on bool) bool {
	if err := h.win.SetAbove(ctx, handle, on); err != nil {
		h.logger.Debug("topmost toggle failed", "handle", string(handle), "on", on, "error", err.Error())
		return false
	}
	return true
}

// Highlight dispatches exactly one effect branch per mode and reports
// overall success. The handle is re-validated first; it may have gone stale
// between discovery and use.
func (h *Highlighter) Highlight(ctx context.Context, handle x11.Handle, mode Mode, flashCount int) bool {
	if !h.win.IsViewable(ctx, handle) {
		h.logger.Warn("highlight target no longer viewable", "handle", string(handle))
		return false
	}

	switch mode {
	case ModeFocus:
		return h.BringToFront(ctx, handle)
	case ModeFlash:
		return h.FlashEnhanced(ctx, handle, flashCount)
	case ModeTopmost:
		ok := h.SetTopmost(ctx, handle, true)
		if ok {
			h.scheduleTopmostRevert(handle)
		}
		return ok
	case ModeAll:
		h.BringToFront(ctx, handle)
		h.sleep(ctx, h.SettleDelay)
		return h.FlashEnhanced(ctx, handle, flashCount)
	default:
		h.logger.Warn("unknown highlight mode", "mode", string(mode))
		return false
	}
}

// scheduleTopmostRevert clears the elevated state on an independent timer,
// so the user's window is never left permanently pinned. Callers must not
// assume the topmost state is settled when Highlight returns.
func (h *Highlighter) scheduleTopmostRevert(handle x11.Handle) {
	time.AfterFunc(h.TopmostRevert, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.win.SetAbove(ctx, handle, false); err != nil {
			h.logger.Debug("topmost revert failed", "handle", string(handle), "error", err.Error())
		}
	})
}

func (h *Highlighter) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
