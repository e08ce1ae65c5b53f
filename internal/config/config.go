// Package config loads and validates extract-code configuration from
// .extract-code/config.yml with environment variable overrides.
package config

import "time"

// Config is the complete extract-code configuration.
type Config struct {
	Project ProjectConfig `yaml:"project" mapstructure:"project"`
	Resolve ResolveConfig `yaml:"resolve" mapstructure:"resolve"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Bundle  BundleConfig  `yaml:"bundle" mapstructure:"bundle"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
}

// ProjectConfig names the analyzed project and what to prune from it.
type ProjectConfig struct {
	Root    string   `yaml:"root" mapstructure:"root"`       // project root directory
	Entry   string   `yaml:"entry" mapstructure:"entry"`     // entry file, relative to root or absolute
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // substrings matched against canonical paths
}

// ResolveConfig tunes import resolution.
type ResolveConfig struct {
	// Externals are module names (first dotted segment) treated as
	// standard-library or installed third-party modules: recorded as
	// dependencies, never traversed.
	Externals []string `yaml:"externals" mapstructure:"externals"`
}

// OutputConfig controls the written artifact.
type OutputConfig struct {
	Path           string `yaml:"path" mapstructure:"path"`
	MaxFilesPerDir int    `yaml:"max_files_per_dir" mapstructure:"max_files_per_dir"` // tree truncation threshold
}

// BundleConfig controls bundle mode file selection.
type BundleConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns selecting files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns dropping files
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Debounce returns the configured debounce as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Exclude: []string{"__pycache__"},
		},
		Resolve: ResolveConfig{
			Externals: DefaultExternals(),
		},
		Output: OutputConfig{
			Path:           "smart_extracted_code.txt",
			MaxFilesPerDir: 8,
		},
		Bundle: BundleConfig{
			Source: []string{"**/*.py"},
			Ignore: []string{
				"**/.venv/**",
				"**/site-packages/**",
				"**/__pycache__/**",
				"**/.git/**",
			},
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// DefaultExternals lists module names assumed to be standard-library or
// installed packages. Projects extend the list via config; anything not
// listed and not found under the root surfaces as an unresolved-import
// diagnostic instead of being silently skipped.
func DefaultExternals() []string {
	return []string{
		// standard library
		"abc", "argparse", "asyncio", "collections", "csv", "dataclasses",
		"datetime", "enum", "functools", "gc", "glob", "hashlib", "http",
		"io", "itertools", "json", "logging", "math", "multiprocessing",
		"os", "pathlib", "pickle", "random", "re", "shutil", "socket",
		"string", "subprocess", "sys", "threading", "time", "typing",
		"unittest", "urllib", "uuid",
		// common third-party
		"certifi", "cv2", "django", "flask", "numpy", "paddleocr", "pandas",
		"PIL", "pydantic", "requests", "scipy", "sklearn", "tensorflow",
		"torch", "ultralytics", "urllib3",
	}
}
