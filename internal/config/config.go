// Package config loads drift's configuration: the repo-local .drift.yaml and
// the ~/.drift/.env credentials file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigName is the repo-local configuration file name.
const ConfigName = ".drift.yaml"

// Weights mirrors the scope filter's signal weights in YAML form.
type Weights struct {
	Pattern   float64 `yaml:"pattern"`
	Category  float64 `yaml:"category"`
	Magnitude float64 `yaml:"magnitude"`
}

// Config is the in-memory representation of .drift.yaml.
type Config struct {
	DocsDir   string `yaml:"docs_dir"`
	ScopePath string `yaml:"scope_path"`
	IndexPath string `yaml:"index_path"`
	BaseRef   string `yaml:"base_ref,omitempty"`

	MinRelevance   float64 `yaml:"min_relevance,omitempty"`
	MinTermMatches int     `yaml:"min_term_matches,omitempty"`
	Weights        Weights `yaml:"weights,omitempty"`

	HighDetail   float64 `yaml:"high_detail_threshold,omitempty"`
	MediumDetail float64 `yaml:"medium_detail_threshold,omitempty"`

	Excludes []string `yaml:"excludes,omitempty"`
}

// DriftDir returns the absolute path to ~/.drift/.
func DriftDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".drift"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration written on first drift init.
func DefaultConfig() *Config {
	return &Config{
		DocsDir:   "docs",
		ScopePath: ".drift/scope.yaml",
		IndexPath: ".drift/term_index.json",
		BaseRef:   "HEAD",
		Excludes: []string{
			".DS_Store",
			"Thumbs.db",
			"*.tmp",
			"*.bak",
			"*~",
			".idea/",
			".vscode/",
			"__pycache__/",
			"*.log",
		},
	}
}

// Load reads .drift.yaml from repoRoot, falling back to defaults when the
// file does not exist.
func Load(repoRoot string) (*Config, error) {
	path := filepath.Join(repoRoot, ConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = "docs"
	}
	if cfg.ScopePath == "" {
		cfg.ScopePath = ".drift/scope.yaml"
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = ".drift/term_index.json"
	}
	if cfg.BaseRef == "" {
		cfg.BaseRef = "HEAD"
	}
	return cfg, nil
}

// Save writes cfg to repoRoot/.drift.yaml.
func Save(cfg *Config, repoRoot string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(repoRoot, ConfigName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
