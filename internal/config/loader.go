package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration with the following priority (highest to lowest):
//  1. Environment variables (EXTRACT_*)
//  2. Config file (<dir>/.extract-code/config.yml)
//  3. Default values
//
// A missing config file is fine; defaults and environment carry the run.
func Load(dir string) (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(dir, ".extract-code")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("EXTRACT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"project.root",
		"project.entry",
		"output.path",
		"output.max_files_per_dir",
		"watch.debounce_ms",
	} {
		v.BindEnv(key)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("project.root", defaults.Project.Root)
	v.SetDefault("project.entry", defaults.Project.Entry)
	v.SetDefault("project.exclude", defaults.Project.Exclude)
	v.SetDefault("resolve.externals", defaults.Resolve.Externals)
	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.max_files_per_dir", defaults.Output.MaxFilesPerDir)
	v.SetDefault("bundle.source", defaults.Bundle.Source)
	v.SetDefault("bundle.ignore", defaults.Bundle.Ignore)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
}
