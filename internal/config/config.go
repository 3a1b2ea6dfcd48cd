package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultComponentRegistry = "https://raw.githubusercontent.com/tailfront/elements/main/src/components/"
	DefaultThemeRegistry     = "https://raw.githubusercontent.com/tailfront/themes/main/src/"
	DefaultComponentPath     = "src/components"
	DefaultThemePath         = "config/themes"
	DefaultTimeoutSeconds    = 30
	ConfigFileName           = "config.toml"

	// EnvConfigPath overrides the location of the config file.
	EnvConfigPath = "TAILFRONT_CONFIG"
)

// Registry holds the registry roots per asset kind
type Registry struct {
	Components     string `toml:"components,omitempty"`
	Themes         string `toml:"themes,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// Paths holds the default install directories relative to the working root
type Paths struct {
	Components string `toml:"components,omitempty"`
	Themes     string `toml:"themes,omitempty"`
}

// Deps controls dependency reconciliation after an asset is written
type Deps struct {
	AutoInstall    bool   `toml:"auto_install,omitempty"`
	Disabled       bool   `toml:"disabled,omitempty"`
	PackageManager string `toml:"package_manager,omitempty"` // npm, pnpm, yarn, bun; empty = detect
}

// ConfigFile represents the TOML config file structure
type ConfigFile struct {
	Registry Registry `toml:"registry"`
	Paths    Paths    `toml:"paths"`
	Deps     Deps     `toml:"deps"`
}

// Config holds the runtime configuration
type Config struct {
	ConfigDir  string
	ConfigPath string
	Registry   Registry
	Paths      Paths
	Deps       Deps
}

// ExpandPath expands ~ to home directory in a path
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// DefaultConfig returns the configuration from ~/.tailfront/config.toml,
// or from $TAILFRONT_CONFIG when set. A missing file yields defaults.
func DefaultConfig() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".tailfront", ConfigFileName)
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return LoadFrom(expanded)
}

// LoadFrom builds a config backed by the file at path
func LoadFrom(path string) (*Config, error) {
	cfg := New(path)
	if err := cfg.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return cfg, nil
}

// New returns a config with defaults and the given backing file
func New(path string) *Config {
	return &Config{
		ConfigDir:  filepath.Dir(path),
		ConfigPath: path,
		Registry: Registry{
			Components:     DefaultComponentRegistry,
			Themes:         DefaultThemeRegistry,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Paths: Paths{
			Components: DefaultComponentPath,
			Themes:     DefaultThemePath,
		},
	}
}

// Load reads the config from disk, keeping defaults for unset values
func (c *Config) Load() error {
	var cf ConfigFile
	if _, err := toml.DecodeFile(c.ConfigPath, &cf); err != nil {
		return err
	}

	if cf.Registry.Components != "" {
		c.Registry.Components = cf.Registry.Components
	}
	if cf.Registry.Themes != "" {
		c.Registry.Themes = cf.Registry.Themes
	}
	if cf.Registry.TimeoutSeconds > 0 {
		c.Registry.TimeoutSeconds = cf.Registry.TimeoutSeconds
	}
	if cf.Paths.Components != "" {
		c.Paths.Components = cf.Paths.Components
	}
	if cf.Paths.Themes != "" {
		c.Paths.Themes = cf.Paths.Themes
	}
	c.Deps = cf.Deps

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	if err := c.EnsureDirs(); err != nil {
		return err
	}

	cf := ConfigFile{
		Registry: c.Registry,
		Paths:    c.Paths,
		Deps:     c.Deps,
	}

	f, err := os.Create(c.ConfigPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cf)
}

// EnsureDirs creates the config directory if it doesn't exist
func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.ConfigDir, 0755)
}
