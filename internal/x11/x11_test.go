package x11

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		raw     string
		want    Handle
		wantErr bool
	}{
		{raw: "0x04000007", want: "0x04000007"},
		{raw: "67108871", want: "0x04000007"},
		{raw: " 0x2a ", want: "0x0000002a"},
		{raw: "", wantErr: true},
		{raw: "nope", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeHandle(tt.raw)
		if tt.wantErr {
			require.Error(t, err, "raw=%q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tt.raw)
		require.Equal(t, tt.want, got)
	}
}

func TestParseWindowListSkipsMalformedLines(t *testing.T) {
	out := strings.Join([]string{
		"0x04000007  0 4242   24   24   1280 720  host my-project - Terminal",
		"0x05000003 -1 991    0    0    1920 28   host",
		"garbage line",
		"0x0600000a  1 5150   10   10   800  600  host Other - Terminal",
		"0xbadid     x 1      1    1    1    1    host broken desktop",
	}, "\n")

	windows := parseWindowList(out)
	require.Len(t, windows, 3)

	require.Equal(t, Descriptor{
		Handle:  "0x04000007",
		Desktop: 0,
		PID:     4242,
		Rect:    Rect{X: 24, Y: 24, W: 1280, H: 720},
		Title:   "my-project - Terminal",
	}, windows[0])

	// Untitled panel window keeps an empty title.
	require.Equal(t, Handle("0x05000003"), windows[1].Handle)
	require.Equal(t, "", windows[1].Title)
	require.Equal(t, -1, windows[1].Desktop)

	require.Equal(t, "Other - Terminal", windows[2].Title)
}

func TestRectArea(t *testing.T) {
	require.Equal(t, 921600, Rect{W: 1280, H: 720}.Area())
	require.Equal(t, 0, Rect{W: -5, H: 100}.Area())
	require.Equal(t, 0, Rect{}.Area())
}

func TestListWindowsRunsWmctrl(t *testing.T) {
	installToolStub(t, "wmctrl", `
echo '0x04000007  0 4242   24   24   1280 720  host my-project - Terminal'
`)

	windows, err := ListWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 1)
	require.Equal(t, Handle("0x04000007"), windows[0].Handle)
}

func TestActiveWindowNormalizesDecimalID(t *testing.T) {
	installToolStub(t, "xdotool", `
echo '67108871'
`)

	handle, err := ActiveWindow(context.Background())
	require.NoError(t, err)
	require.Equal(t, Handle("0x04000007"), handle)
}

func TestStateMutationsUseWmctrlStateVerbs(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "wmctrl-args.log")
	t.Setenv("WMCTRL_ARGS_FILE", argsFile)
	installToolStub(t, "wmctrl", `
printf '%s\n' "$*" >> "${WMCTRL_ARGS_FILE}"
`)

	ctx := context.Background()
	require.NoError(t, SetDemandsAttention(ctx, "0x0000002a", true))
	require.NoError(t, SetDemandsAttention(ctx, "0x0000002a", false))
	require.NoError(t, SetAbove(ctx, "0x0000002a", true))
	require.NoError(t, SetAbove(ctx, "0x0000002a", false))
	require.NoError(t, Activate(ctx, "0x0000002a"))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, []string{
		"-i -r 0x0000002a -b add,demands_attention",
		"-i -r 0x0000002a -b remove,demands_attention",
		"-i -r 0x0000002a -b add,above",
		"-i -r 0x0000002a -b remove,above",
		"-i -a 0x0000002a",
	}, lines)
}

func TestIsViewableRequiresNormalState(t *testing.T) {
	installToolStub(t, "xprop", `
if [[ "$2" == "0x00000001" ]]; then
  echo 'WM_STATE(WM_STATE):'
  echo '		window state: Normal'
  echo '		icon window: 0x0'
  exit 0
fi
if [[ "$2" == "0x00000002" ]]; then
  echo '		window state: Iconic'
  exit 0
fi
echo "xprop: error: window id ${2} does not exist" >&2
exit 1
`)

	ctx := context.Background()
	require.True(t, IsViewable(ctx, "0x00000001"))
	require.False(t, IsViewable(ctx, "0x00000002"))
	require.False(t, IsViewable(ctx, "0x00000003"))
}

func TestCurrentTerminalWindowReadsEnvironment(t *testing.T) {
	t.Setenv("WINDOWID", "67108871")
	handle, ok := CurrentTerminalWindow()
	require.True(t, ok)
	require.Equal(t, Handle("0x04000007"), handle)

	t.Setenv("WINDOWID", "")
	_, ok = CurrentTerminalWindow()
	require.False(t, ok)

	t.Setenv("WINDOWID", "not-a-number")
	_, ok = CurrentTerminalWindow()
	require.False(t, ok)
}

func TestRunToolOutputIncludesStderrOnFailure(t *testing.T) {
	installToolStub(t, "wmctrl", `
echo 'boom from wmctrl' >&2
exit 1
`)

	_, err := ListWindows(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom from wmctrl")
}

func installToolStub(t *testing.T, name, body string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}
