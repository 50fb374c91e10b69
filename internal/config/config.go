package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

type Category struct {
	Name     string   `yaml:"name"`
	Packages []string `yaml:"packages"`
}

type Config struct {
	UseAlternate     bool          `yaml:"use_alternate"`
	Primary          string        `yaml:"primary,omitempty"`
	Alternate        string        `yaml:"alternate,omitempty"`
	Elevator         string        `yaml:"elevator,omitempty"`
	OperationTimeout time.Duration `yaml:"operation_timeout,omitempty"`
	QueryTimeout     time.Duration `yaml:"query_timeout,omitempty"`
	LogPath          string        `yaml:"log_path,omitempty"`
	Packages         []string      `yaml:"packages"`
	Categories       []Category    `yaml:"categories,omitempty"`

	path string
}

func Default() *Config {
	cfg := &Config{Packages: []string{}}
	cfg.applyDefaults()
	return cfg
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fikus", "settings.yaml"), nil
}

func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults that
// Save will write back to path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.path = path
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Primary == "" {
		c.Primary = "pacman"
	}
	if c.Alternate == "" {
		c.Alternate = "yay"
	}
	if c.Elevator == "" {
		c.Elevator = "sudo"
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = 30 * time.Minute
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = 10 * time.Second
	}
	if c.Packages == nil {
		c.Packages = []string{}
	}
}

// Catalog returns the configured categories, or the built-in ones.
func (c *Config) Catalog() []Category {
	if len(c.Categories) == 0 {
		return DefaultCategories()
	}
	return c.Categories
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) IsBookmarked(pkg string) bool {
	return slices.Contains(c.Packages, pkg)
}

// ToggleBookmark adds or removes pkg and reports whether it is now bookmarked.
func (c *Config) ToggleBookmark(pkg string) bool {
	if i := slices.Index(c.Packages, pkg); i >= 0 {
		c.Packages = slices.Delete(c.Packages, i, i+1)
		return false
	}
	c.Packages = append(c.Packages, pkg)
	return true
}
