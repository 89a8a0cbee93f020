package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Layer identifies where a merged value came from.
type Layer string

const (
	LayerDefault Layer = "default"
	LayerGlobal  Layer = "global"
	LayerProject Layer = "project"
	LayerEnv     Layer = "env"
)

const envPrefix = "CCNUDGE_"

// Loaded is the merged configuration plus enough layer bookkeeping to
// attribute any key to its source.
type Loaded struct {
	Config Config

	GlobalPath    string
	ProjectPath   string
	GlobalExists  bool
	ProjectExists bool

	global  *koanf.Koanf
	project *koanf.Koanf
	env     *koanf.Koanf
}

// Load merges defaults, the global file, the project file, and CCNUDGE_*
// environment variables, in that order, then validates the result.
func Load(globalPath, projectPath string) (Loaded, error) {
	merged := koanf.New(".")
	for key, val := range defaultsMap() {
		if err := merged.Set(key, val); err != nil {
			return Loaded{}, fmt.Errorf("seed default %q: %w", key, err)
		}
	}

	loaded := Loaded{
		GlobalPath:  globalPath,
		ProjectPath: projectPath,
		global:      koanf.New("."),
		project:     koanf.New("."),
		env:         koanf.New("."),
	}

	var err error
	loaded.GlobalExists, err = mergeFile(merged, loaded.global, globalPath)
	if err != nil {
		return Loaded{}, err
	}
	loaded.ProjectExists, err = mergeFile(merged, loaded.project, projectPath)
	if err != nil {
		return Loaded{}, err
	}

	if err := loaded.env.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Loaded{}, fmt.Errorf("read environment overrides: %w", err)
	}
	if err := merged.Merge(loaded.env); err != nil {
		return Loaded{}, fmt.Errorf("merge environment overrides: %w", err)
	}

	if err := merged.Unmarshal("", &loaded.Config); err != nil {
		return Loaded{}, fmt.Errorf("decode merged config: %w", err)
	}
	if err := validator.New().Struct(loaded.Config); err != nil {
		return Loaded{}, fmt.Errorf("validate config: %w", err)
	}

	return loaded, nil
}

// Source reports the highest-precedence layer that set a key.
func (l Loaded) Source(key string) Layer {
	switch {
	case l.env != nil && l.env.Exists(key):
		return LayerEnv
	case l.project != nil && l.project.Exists(key):
		return LayerProject
	case l.global != nil && l.global.Exists(key):
		return LayerGlobal
	default:
		return LayerDefault
	}
}

func mergeFile(merged, layer *koanf.Koanf, path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat config %q: %w", path, err)
	}
	if err := layer.Load(file.Provider(path), kjson.Parser()); err != nil {
		return false, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := merged.Merge(layer); err != nil {
		return false, fmt.Errorf("merge config %q: %w", path, err)
	}
	return true, nil
}

// envKey maps CCNUDGE_EVENTS__STOP__SOUND to events.stop.sound. Double
// underscore nests; single underscores stay part of the key.
func envKey(raw string) string {
	key := strings.ToLower(strings.TrimPrefix(raw, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// defaultsMap flattens Default into dotted koanf keys so file and env
// layers can override individual leaves.
func defaultsMap() map[string]any {
	d := Default()
	m := map[string]any{
		"enabled":               d.Enabled,
		"sound_enabled":         d.SoundEnabled,
		"highlight_enabled":     d.HighlightEnabled,
		"sound_dir":             d.SoundDir,
		"finder.terminal_titles": d.Finder.TerminalTitles,
		"finder.deny_titles":     d.Finder.DenyTitles,
		"finder.terminal_procs":  d.Finder.TerminalProcs,
	}
	for name, ev := range d.Events {
		prefix := "events." + name + "."
		m[prefix+"enabled"] = ev.Enabled
		m[prefix+"sound"] = ev.Sound
		m[prefix+"highlight"] = ev.Highlight
		m[prefix+"flash_count"] = ev.FlashCount
		m[prefix+"highlight_mode"] = ev.HighlightMode
		m[prefix+"sound_file"] = ev.SoundFile
	}
	return m
}
