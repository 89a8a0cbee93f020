package highlight

import (
	"fmt"
	"strings"
)

// Mode selects which highlight effect a notification applies.
type Mode string

const (
	ModeFlash   Mode = "flash"
	ModeTopmost Mode = "topmost"
	ModeFocus   Mode = "focus"
	ModeAll     Mode = "all"
)

// ParseMode validates a raw highlight-mode string.
func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	switch mode {
	case ModeFlash, ModeTopmost, ModeFocus, ModeAll:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown highlight mode %q", raw)
	}
}
