package config

import (
	"os"
	"path/filepath"
)

// Paths provides all lyra-related filesystem paths.
type Paths struct {
	ConfigDir   string // ~/.config/lyra
	CacheDir    string // ~/.cache/lyra
	ConfigFile  string // ~/.config/lyra/config.yaml
	HistoryFile string // ~/.config/lyra/history.jsonl
	ExportsDir  string // ~/.config/lyra/exports
	DraftFile   string // ~/.cache/lyra/draft.json
}

// NewPaths creates Paths using ~/.config and ~/.cache directories.
// These are used on every platform so the layout stays predictable.
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	return NewPathsWithOverrides(
		filepath.Join(home, ".config", "lyra"),
		filepath.Join(home, ".cache", "lyra"),
	)
}

// NewPathsWithOverrides allows overriding directories for testing.
func NewPathsWithOverrides(configDir, cacheDir string) *Paths {
	return &Paths{
		ConfigDir:   configDir,
		CacheDir:    cacheDir,
		ConfigFile:  filepath.Join(configDir, "config.yaml"),
		HistoryFile: filepath.Join(configDir, "history.jsonl"),
		ExportsDir:  filepath.Join(configDir, "exports"),
		DraftFile:   filepath.Join(cacheDir, "draft.json"),
	}
}
