package sound

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hmori/ccnudge/internal/event"
)

func writeAsset(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
	return path
}

func TestResolveAssetPrefersEventSpecificFile(t *testing.T) {
	dir := t.TempDir()
	specific := writeAsset(t, dir, "permission.mp3")
	writeAsset(t, dir, "notice.mp3")

	p := New(dir, nil)
	require.Equal(t, specific, p.ResolveAsset(event.KindPermission, ""))
}

func TestResolveAssetFallbackOrderPerKind(t *testing.T) {
	for _, kind := range event.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			dir := t.TempDir()
			p := New(dir, nil)

			// No assets at all: beep path.
			require.Equal(t, "", p.ResolveAsset(kind, ""))

			// Generic asset only: generic wins.
			generic := writeAsset(t, dir, "notice.mp3")
			require.Equal(t, generic, p.ResolveAsset(kind, ""))

			// Event-specific asset present: specific wins.
			specific := writeAsset(t, dir, assetNames[kind])
			require.Equal(t, specific, p.ResolveAsset(kind, ""))
		})
	}
}

func TestResolveAssetCustomPathOverridesLookup(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "complete.mp3")

	p := New(dir, nil)
	// The custom path wins even when it does not exist; playback failure
	// handles the degradation.
	require.Equal(t, "/srv/custom/ding.wav", p.ResolveAsset(event.KindStop, "/srv/custom/ding.wav"))
}

func TestPlayUsesPlayerBinary(t *testing.T) {
	dir := t.TempDir()
	asset := writeAsset(t, dir, "complete.mp3")

	argsFile := filepath.Join(t.TempDir(), "play-args.log")
	t.Setenv("PLAY_ARGS_FILE", argsFile)
	installPlayerStub(t, "pw-play", `
printf '%s\n' "$*" >> "${PLAY_ARGS_FILE}"
`)

	beeped := false
	p := New(dir, nil)
	p.beep = func() { beeped = true }

	p.Play(context.Background(), event.KindStop, "")
	require.False(t, beeped)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Equal(t, "--media-role Notification "+asset, strings.TrimSpace(string(data)))
}

func TestPlayFallsBackThroughPlayers(t *testing.T) {
	dir := t.TempDir()
	asset := writeAsset(t, dir, "complete.mp3")

	argsFile := filepath.Join(t.TempDir(), "play-args.log")
	t.Setenv("PLAY_ARGS_FILE", argsFile)
	installPlayerStub(t, "pw-play", `
exit 1
`)
	installPlayerStub(t, "paplay", `
printf '%s\n' "$*" >> "${PLAY_ARGS_FILE}"
`)

	beeped := false
	p := New(dir, nil)
	p.beep = func() { beeped = true }

	p.Play(context.Background(), event.KindStop, "")
	require.False(t, beeped)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Equal(t, asset, strings.TrimSpace(string(data)))
}

func TestPlayDegradesToBeepWhenPlaybackFails(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "complete.mp3")

	installPlayerStub(t, "pw-play", `
exit 1
`)
	installPlayerStub(t, "paplay", `
exit 1
`)

	beeped := false
	p := New(dir, nil)
	p.beep = func() { beeped = true }

	p.Play(context.Background(), event.KindStop, "")
	require.True(t, beeped)
}

func TestPlayDegradesToBeepWithoutAssets(t *testing.T) {
	beeped := false
	p := New(t.TempDir(), nil)
	p.beep = func() { beeped = true }

	p.Play(context.Background(), event.KindError, "")
	require.True(t, beeped)
}

func TestPlayAsyncSignalsCompletion(t *testing.T) {
	p := New(t.TempDir(), nil)
	p.beep = func() {}

	done := p.PlayAsync(context.Background(), event.KindStop, "")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sound path never settled")
	}
}

func TestSynthesizedBeepShape(t *testing.T) {
	require.Len(t, beepPCM, int(beepDurationSec*beepSampleRate))

	// Envelope starts and ends silent.
	require.Zero(t, beepPCM[0])
	require.Zero(t, beepPCM[len(beepPCM)-1])

	peak := int16(0)
	for _, s := range beepPCM {
		if s > peak {
			peak = s
		}
	}
	require.Greater(t, peak, int16(3000))
}

func installPlayerStub(t *testing.T, name, body string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}
