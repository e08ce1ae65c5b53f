package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validate checks the only conditions that abort a run before extraction
// begins: the project root must exist as a directory and the entry file must
// exist under it. Everything else degrades per-file at runtime.
func Validate(cfg *Config) error {
	if cfg.Project.Root == "" {
		return fmt.Errorf("project root is required")
	}

	rootInfo, err := os.Stat(cfg.Project.Root)
	if err != nil {
		return fmt.Errorf("project root %q: %w", cfg.Project.Root, err)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf("project root %q is not a directory", cfg.Project.Root)
	}

	if cfg.Project.Entry == "" {
		return fmt.Errorf("entry file is required")
	}

	entry := cfg.EntryPath()
	entryInfo, err := os.Stat(entry)
	if err != nil {
		return fmt.Errorf("entry file %q: %w", entry, err)
	}
	if entryInfo.IsDir() {
		return fmt.Errorf("entry file %q is a directory", entry)
	}

	root, err := filepath.Abs(cfg.Project.Root)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(entry)
	if err != nil {
		return err
	}
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return fmt.Errorf("entry file %q is outside project root %q", entry, cfg.Project.Root)
	}

	return nil
}

// EntryPath returns the entry file path, resolving a relative entry against
// the project root.
func (c *Config) EntryPath() string {
	if filepath.IsAbs(c.Project.Entry) {
		return c.Project.Entry
	}
	return filepath.Join(c.Project.Root, c.Project.Entry)
}
