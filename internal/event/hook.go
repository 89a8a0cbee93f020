package event

import (
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// hook payload size guard; assistant payloads are small JSON objects.
const maxHookPayload = 1 << 20

// DecodeHookPayload maps an assistant hook JSON payload (read from stdin)
// to an event Context. The contract between the assistant and ccnudge is
// the JSON schema, not shared types.
func DecodeHookPayload(r io.Reader) (Context, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxHookPayload))
	if err != nil {
		return Context{}, fmt.Errorf("read hook payload: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return Context{}, fmt.Errorf("hook payload is not valid JSON")
	}

	doc := gjson.ParseBytes(raw)
	return Context{
		Kind:     kindFromHookEvent(doc.Get("hook_event_name").String()),
		Workdir:  strings.TrimSpace(doc.Get("cwd").String()),
		ToolName: strings.TrimSpace(doc.Get("tool_name").String()),
	}, nil
}

// kindFromHookEvent maps assistant hook event names onto notification kinds.
// Unknown names degrade to the stop kind rather than failing the cycle.
func kindFromHookEvent(name string) Kind {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "stop", "subagentstop", "subagent_stop":
		return KindStop
	case "posttooluse", "post_tool_use":
		return KindToolComplete
	case "notification", "permission", "permissionrequest":
		return KindPermission
	}
	if strings.Contains(normalized, "error") {
		return KindError
	}
	return KindStop
}
