// Package config loads analysis configuration from yaml, toml or json
// files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for searchdeadcode.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Entry point settings
	EntryPoints EntryPointConfig `koanf:"entry_points"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls which passes run and how.
type AnalysisConfig struct {
	// Deep switches from the whole-type-retaining baseline to the
	// member-precise strict analysis.
	Deep          bool `koanf:"deep"`
	UnusedMembers bool `koanf:"unused_members"`
	Cycles        bool `koanf:"cycles"`
	Parallel      bool `koanf:"parallel"`
	Workers       int  `koanf:"workers"`

	// MinConfidence filters findings below this score (0.25 low,
	// 0.50 medium, 0.75 high, 1.0 confirmed).
	MinConfidence float64 `koanf:"min_confidence"`
}

// EntryPointConfig augments the externally supplied entry point ids.
type EntryPointConfig struct {
	// Retain lists declaration name patterns kept alive regardless of
	// inbound references, matched as substrings of the qualified name.
	Retain []string `koanf:"retain"`
}

// ExcludeConfig defines path exclusion patterns applied to findings.
type ExcludeConfig struct {
	Patterns []string `koanf:"patterns"`
	Dirs     []string `koanf:"dirs"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Deep:          true,
			UnusedMembers: true,
			Cycles:        true,
			Parallel:      true,
			MinConfidence: 0.50,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.generated.kt",
			},
			Dirs: []string{
				"build",
				".gradle",
			},
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, picking the parser from the
// file extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations or returns defaults.
func LoadOrDefault() *Config {
	names := []string{
		"searchdeadcode.toml",
		"searchdeadcode.yaml",
		"searchdeadcode.yml",
		"searchdeadcode.json",
		".searchdeadcode.toml",
		".searchdeadcode.yaml",
		".searchdeadcode.yml",
		".searchdeadcode.json",
	}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// ShouldExclude checks if a finding path is excluded from reporting.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
