// Package scan walks a project tree and selects source files by glob
// patterns, used by bundle mode where every matching file is collected
// without reachability analysis.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// builtinIgnores are path substrings that are never worth bundling:
// virtualenvs and bytecode caches.
var builtinIgnores = []string{".venv", "site-packages", "__pycache__"}

// compiledPattern pairs a compiled glob with its "**/"-stripped variant,
// compiled once for matching root-level files.
type compiledPattern struct {
	glob     glob.Glob
	rootGlob glob.Glob
}

// Discovery selects files under one root by source and ignore glob patterns.
type Discovery struct {
	root           string
	sourcePatterns []compiledPattern
	ignorePatterns []compiledPattern
}

// NewDiscovery compiles the given glob patterns for the root directory.
// Source patterns select files (e.g. "**/*.py"); ignore patterns drop them.
func NewDiscovery(root string, sourcePatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{root: root}

	var err error
	if d.sourcePatterns, err = compilePatterns(sourcePatterns); err != nil {
		return nil, err
	}
	if d.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return d, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	var compiled []compiledPattern
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		cp := compiledPattern{glob: g}
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if cp.rootGlob, err = glob.Compile(simplified, '/'); err != nil {
				return nil, err
			}
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// Files walks the root and returns matching file paths, sorted for
// reproducible bundles.
func (d *Discovery) Files() ([]string, error) {
	files := []string{}

	err := filepath.Walk(d.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		for _, ignore := range builtinIgnores {
			if strings.Contains(path, ignore) {
				return nil
			}
		}

		relPath, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.matchesAnyPattern(relPath, d.ignorePatterns) {
			return nil
		}
		if d.matchesAnyPattern(relPath, d.sourcePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// matchesAnyPattern checks if a path matches any of the given patterns.
// Root-level files also match "**/"-prefixed patterns with the prefix
// stripped, so "**/*.py" covers both "main.py" and "pkg/util.py".
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	rootLevel := !strings.Contains(path, "/")
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		if rootLevel && cp.rootGlob != nil && cp.rootGlob.Match(path) {
			return true
		}
	}
	return false
}
