// Package config provides configuration loading and structs for hwpdig.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Watch  WatchConfig  `yaml:"watch"`
	Output OutputConfig `yaml:"output"`
}

// WatchConfig holds intake-directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true
// when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// OutputConfig holds settings for what is done with extracted text.
type OutputConfig struct {
	// PreviewChars is how many characters the parse subcommand prints before
	// truncating (0 = print everything).
	PreviewChars int `yaml:"preview_chars"`
	// TextDir, when set, is where watch mode writes one .txt file per parsed
	// attachment. Empty means extracted text is only logged.
	TextDir string `yaml:"text_dir"`
}

// Load reads and parses the config file at path, expands home-relative paths,
// and applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for i, dir := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(dir)
	}
	cfg.Output.TextDir = expandPath(cfg.Output.TextDir)
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// expandPath expands a leading "~/" to the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
