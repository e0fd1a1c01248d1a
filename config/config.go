// Package config loads numinfer settings from a YAML file.
//
// The file is named numinfer.yaml or .numinfer.yaml and is searched for in
// the start directory and then its parents.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hfeeki/numba/infer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CacheEnv overrides the cache directory.
const CacheEnv = "NUMINFER_CACHE"

// Config is the file structure. Unset fields keep their defaults.
type Config struct {
	// CacheDir holds cached inference results
	CacheDir *string `yaml:"cacheDir,omitempty"`

	// IndexWidth is the bit width of intp, 32 or 64
	IndexWidth *uint32 `yaml:"indexWidth,omitempty"`

	// Cache enables the on-disk result cache (default true)
	Cache *bool `yaml:"cache,omitempty"`

	// EmitIR prints the LLVM declaration of each specialization
	EmitIR *bool `yaml:"emitIR,omitempty"`
}

// Settings are the resolved values the CLI runs with.
type Settings struct {
	CacheDir   string
	IndexWidth uint32
	Cache      bool
	EmitIR     bool
}

func DefaultSettings() Settings {
	return Settings{
		CacheDir:   DefaultCacheDir(),
		IndexWidth: infer.DefaultConfig().IndexWidth,
		Cache:      true,
	}
}

// Engine is the inference configuration for these settings.
func (s Settings) Engine() infer.Config {
	return infer.Config{IndexWidth: s.IndexWidth}
}

// FileNames are the names searched for, in order of preference.
var FileNames = []string{
	"numinfer.yaml",
	".numinfer.yaml",
}

// Load searches for a config file starting from startDir and walking up to
// the root. It returns nil and an empty path when no file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates a config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if w := cfg.IndexWidth; w != nil && *w != 32 && *w != 64 {
		return nil, errors.Errorf("indexWidth must be 32 or 64, got %d", *w)
	}
	return &cfg, nil
}

// ToSettings applies the file's values over the defaults. A nil config
// yields the defaults.
func (c *Config) ToSettings() Settings {
	s := DefaultSettings()
	if c == nil {
		return s
	}
	if c.CacheDir != nil {
		s.CacheDir = *c.CacheDir
	}
	if c.IndexWidth != nil {
		s.IndexWidth = *c.IndexWidth
	}
	if c.Cache != nil {
		s.Cache = *c.Cache
	}
	if c.EmitIR != nil {
		s.EmitIR = *c.EmitIR
	}
	return s
}

// MergeOptions are command line overrides; nil means not given.
type MergeOptions struct {
	CacheDir *string
	Cache    *bool
	EmitIR   *bool
}

// Merge applies command line overrides over the file settings.
func (c *Config) Merge(cli MergeOptions) Settings {
	s := c.ToSettings()
	if cli.CacheDir != nil {
		s.CacheDir = *cli.CacheDir
	}
	if cli.Cache != nil {
		s.Cache = *cli.Cache
	}
	if cli.EmitIR != nil {
		s.EmitIR = *cli.EmitIR
	}
	return s
}

// DefaultCacheDir returns $NUMINFER_CACHE if set, else the per-user cache
// directory for the platform.
func DefaultCacheDir() string {
	if env := os.Getenv(CacheEnv); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "numinfer")
		}
		return filepath.Join(homeDir, "AppData", "Local", "numinfer")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", "numinfer")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "numinfer")
		}
		return filepath.Join(homeDir, ".cache", "numinfer")
	}
}
