// Package event defines the notification event model consumed by one cycle.
package event

import (
	"fmt"
	"strings"
)

// Kind is the category of coding-assistant activity triggering a notification.
type Kind string

const (
	KindStop         Kind = "stop"
	KindToolComplete Kind = "tool_complete"
	KindPermission   Kind = "permission"
	KindError        Kind = "error"
)

// Kinds lists every valid event kind in display order.
func Kinds() []Kind {
	return []Kind{KindStop, KindToolComplete, KindPermission, KindError}
}

// ParseKind validates a raw event-kind string.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindStop, KindToolComplete, KindPermission, KindError:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown event kind %q", raw)
	}
}

// Context is the immutable input to one notification cycle.
type Context struct {
	Kind     Kind
	Workdir  string
	ToolName string
}
