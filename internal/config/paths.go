package config

import (
	"os"
	"path/filepath"
)

// Paths holds the file system locations used by glide
type Paths struct {
	Home       string // ~/.glide or $GLIDE_HOME
	ConfigPath string // ~/.glide/config.json
	LogsDir    string // ~/.glide/logs
	TracesDir  string // ~/.glide/traces
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("GLIDE_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(home, ".glide")
	}
	return PathsAt(root), nil
}

// PathsAt lays out the glide directories under root
func PathsAt(root string) *Paths {
	return &Paths{
		Home:       root,
		ConfigPath: filepath.Join(root, "config.json"),
		LogsDir:    filepath.Join(root, "logs"),
		TracesDir:  filepath.Join(root, "traces"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsDir, p.TracesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
