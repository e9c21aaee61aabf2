package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for dbmapper. Scalar
// fields are pointers so an unset field can be told apart from its zero
// value when merging with CLI flags; slice fields use nil for unset.
type FileConfig struct {
	Include           []string `yaml:"include"`
	Exclude           []string `yaml:"exclude"`
	Languages         []string `yaml:"languages"`
	Plugins           []string `yaml:"plugins"`
	Formats           []string `yaml:"formats"`
	Output            *string  `yaml:"output"`
	MinConfidence     *float64 `yaml:"min_confidence"`
	Threads           *int     `yaml:"threads"`
	StableIDs         *bool    `yaml:"stable_ids"`
	KeepLowConfidence *bool    `yaml:"keep_low_confidence"`
	DefaultExcludes   *bool    `yaml:"default_excludes"`
	NoColor           *bool    `yaml:"no_color"`
}

// Merge overlays other on top of fc: any field set in other wins. Returns
// the merged result; neither receiver nor argument is modified.
func (fc FileConfig) Merge(other FileConfig) FileConfig {
	out := fc
	if other.Include != nil {
		out.Include = other.Include
	}
	if other.Exclude != nil {
		out.Exclude = other.Exclude
	}
	if other.Languages != nil {
		out.Languages = other.Languages
	}
	if other.Plugins != nil {
		out.Plugins = other.Plugins
	}
	if other.Formats != nil {
		out.Formats = other.Formats
	}
	if other.Output != nil {
		out.Output = other.Output
	}
	if other.MinConfidence != nil {
		out.MinConfidence = other.MinConfidence
	}
	if other.Threads != nil {
		out.Threads = other.Threads
	}
	if other.StableIDs != nil {
		out.StableIDs = other.StableIDs
	}
	if other.KeepLowConfidence != nil {
		out.KeepLowConfidence = other.KeepLowConfidence
	}
	if other.DefaultExcludes != nil {
		out.DefaultExcludes = other.DefaultExcludes
	}
	if other.NoColor != nil {
		out.NoColor = other.NoColor
	}
	return out
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .dbmapper.yml/.yaml and dbmapper.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".dbmapper.yml", ".dbmapper.yaml", "dbmapper.yml", "dbmapper.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "dbmapper", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Resolve loads the effective file configuration for a repository:
// global config first, overlaid by the repo-local file. Missing files are
// not errors.
func Resolve(repoRoot string) FileConfig {
	cfg, _ := LoadGlobal()
	if local, err := LoadLocal(repoRoot); err == nil {
		cfg = cfg.Merge(local)
	}
	return cfg
}
