package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hmori/ccnudge/internal/config"
	"github.com/hmori/ccnudge/internal/event"
	"github.com/hmori/ccnudge/internal/highlight"
	"github.com/hmori/ccnudge/internal/x11"
)

type fakeFinder struct {
	handle x11.Handle
	found  bool
	calls  int
}

func (f *fakeFinder) Find(context.Context, event.Context) (x11.Handle, bool) {
	f.calls++
	return f.handle, f.found
}

type fakeProber struct {
	viewable bool
}

func (f *fakeProber) IsViewable(context.Context, x11.Handle) bool {
	return f.viewable
}

type fakeFx struct {
	calls  int
	handle x11.Handle
	mode   highlight.Mode
	count  int
	result bool
}

func (f *fakeFx) Highlight(_ context.Context, h x11.Handle, mode highlight.Mode, count int) bool {
	f.calls++
	f.handle = h
	f.mode = mode
	f.count = count
	return f.result
}

type fakeCues struct {
	calls  int
	kind   event.Kind
	custom string
	block  bool
}

func (f *fakeCues) PlayAsync(_ context.Context, kind event.Kind, custom string) <-chan struct{} {
	f.calls++
	f.kind = kind
	f.custom = custom
	done := make(chan struct{})
	if !f.block {
		close(done)
	}
	return done
}

func newTestOrchestrator(finder *fakeFinder, prober *fakeProber, fx *fakeFx, cues *fakeCues) *Orchestrator {
	o := New(finder, prober, fx, cues, nil)
	o.JoinTimeout = 100 * time.Millisecond
	return o
}

func resolved() config.Resolved {
	return config.Resolved{
		Enabled:    true,
		Sound:      true,
		Highlight:  true,
		FlashCount: 5,
		Mode:       "flash",
	}
}

func TestExecuteDispatchesSoundAndHighlight(t *testing.T) {
	finder := &fakeFinder{handle: "0x00000042", found: true}
	fx := &fakeFx{result: true}
	cues := &fakeCues{}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, fx, cues)

	status := o.Execute(context.Background(), resolved(), event.Context{Kind: event.KindStop})
	require.Zero(t, status)

	require.Equal(t, 1, finder.calls)
	require.Equal(t, 1, fx.calls)
	require.Equal(t, x11.Handle("0x00000042"), fx.handle)
	require.Equal(t, highlight.ModeFlash, fx.mode)
	require.Equal(t, 5, fx.count)

	require.Equal(t, 1, cues.calls)
	require.Equal(t, event.KindStop, cues.kind)
}

func TestExecuteDisabledSkipsEverything(t *testing.T) {
	finder := &fakeFinder{found: true}
	fx := &fakeFx{}
	cues := &fakeCues{}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, fx, cues)

	res := resolved()
	res.Enabled = false
	res.Sound = false
	res.Highlight = false

	require.Zero(t, o.Execute(context.Background(), res, event.Context{Kind: event.KindStop}))
	require.Zero(t, finder.calls)
	require.Zero(t, fx.calls)
	require.Zero(t, cues.calls)
}

func TestExecuteSoundSurvivesMissingWindow(t *testing.T) {
	finder := &fakeFinder{found: false}
	fx := &fakeFx{}
	cues := &fakeCues{}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, fx, cues)

	require.Zero(t, o.Execute(context.Background(), resolved(), event.Context{Kind: event.KindError}))
	require.Zero(t, fx.calls)
	require.Equal(t, 1, cues.calls)
	require.Equal(t, event.KindError, cues.kind)
}

func TestExecuteStaleHandleSkipsHighlightOnly(t *testing.T) {
	finder := &fakeFinder{handle: "0x00000042", found: true}
	fx := &fakeFx{result: true}
	cues := &fakeCues{}
	o := newTestOrchestrator(finder, &fakeProber{viewable: false}, fx, cues)

	require.Zero(t, o.Execute(context.Background(), resolved(), event.Context{Kind: event.KindStop}))
	require.Zero(t, fx.calls)
	require.Equal(t, 1, cues.calls)
}

func TestExecuteSoundOnlyNeverSearchesForWindows(t *testing.T) {
	finder := &fakeFinder{found: true}
	fx := &fakeFx{}
	cues := &fakeCues{}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, fx, cues)

	res := resolved()
	res.Highlight = false

	require.Zero(t, o.Execute(context.Background(), res, event.Context{Kind: event.KindToolComplete}))
	require.Zero(t, finder.calls)
	require.Zero(t, fx.calls)
	require.Equal(t, 1, cues.calls)
}

func TestExecuteHighlightOnlyMissFinishesWithoutDispatch(t *testing.T) {
	finder := &fakeFinder{found: false}
	fx := &fakeFx{}
	cues := &fakeCues{}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, fx, cues)

	res := resolved()
	res.Sound = false

	require.Zero(t, o.Execute(context.Background(), res, event.Context{Kind: event.KindStop}))
	require.Zero(t, fx.calls)
	require.Zero(t, cues.calls)
}

func TestExecuteBoundsTheSoundJoin(t *testing.T) {
	finder := &fakeFinder{found: false}
	cues := &fakeCues{block: true}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, &fakeFx{}, cues)

	start := time.Now()
	require.Zero(t, o.Execute(context.Background(), resolved(), event.Context{Kind: event.KindStop}))
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestExecutePassesCustomSoundFileThrough(t *testing.T) {
	cues := &fakeCues{}
	o := newTestOrchestrator(&fakeFinder{}, &fakeProber{viewable: true}, &fakeFx{}, cues)

	res := resolved()
	res.Highlight = false
	res.SoundFile = "~/cues/ding.wav"

	require.Zero(t, o.Execute(context.Background(), res, event.Context{Kind: event.KindPermission}))
	require.Equal(t, "~/cues/ding.wav", cues.custom)
}

func TestExecuteBadModeFallsBackToFlash(t *testing.T) {
	finder := &fakeFinder{handle: "0x00000001", found: true}
	fx := &fakeFx{result: true}
	o := newTestOrchestrator(finder, &fakeProber{viewable: true}, fx, &fakeCues{})

	res := resolved()
	res.Mode = "sparkle"

	require.Zero(t, o.Execute(context.Background(), res, event.Context{Kind: event.KindStop}))
	require.Equal(t, highlight.ModeFlash, fx.mode)
}
