package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SetToggles read-modify-writes boolean keys in one config file. Keys are
// dotted paths ("sound_enabled", "events.stop.sound"). Unknown keys in the
// existing file are preserved untouched.
func SetToggles(path string, changes map[string]bool) error {
	raw := map[string]any{}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(content, &raw); err != nil {
			return fmt.Errorf("parse config %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// First write creates the file.
	default:
		return fmt.Errorf("read config %q: %w", path, err)
	}

	for key, val := range changes {
		setDotted(raw, key, val)
	}

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	out = append(out, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}

func setDotted(m map[string]any, dotted string, val any) {
	parts := strings.Split(dotted, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = val
}
