package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ProjectFileName is looked up in the event's working directory.
const ProjectFileName = ".ccnudge.json"

// GlobalPath applies CLI/XDG/home fallback rules for the global config file.
func GlobalPath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "ccnudge", "config.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for config fallback")
	}

	return filepath.Join(home, ".config", "ccnudge", "config.json"), nil
}

// ProjectPath returns the per-project config location for a working
// directory, or "" when no directory is known.
func ProjectPath(workdir string) string {
	if strings.TrimSpace(workdir) == "" {
		return ""
	}
	return filepath.Join(workdir, ProjectFileName)
}
