package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/tinywins/internal/constants"
)

// DefaultPath is where the config file is looked for when none is given.
const DefaultPath = "~/.config/tinywins/config.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML path is path if set, else TINYWINS_CONFIG, else DefaultPath.
// An explicit path must exist; a missing default file means ENV + defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("TINYWINS_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", path, err)
	}

	if _, err := os.Stat(expanded); err == nil {
		if err := cleanenv.ReadConfig(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", expanded, err)
		}
		cfg.Path = expanded
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", expanded, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration built from defaults and the environment only.
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Storage.Path, &c.Storage.BackupDir, &c.Log.Dir} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Dir returns the directory holding the application's files.
func (c *Config) Dir() string {
	if c.Path != "" {
		return filepath.Dir(c.Path)
	}
	dir, err := homedir.Expand(filepath.Join("~", ".config", constants.AppName))
	if err != nil {
		return filepath.Join(".", "."+constants.AppName)
	}
	return dir
}

// Usage describes every environment variable the config understands.
func Usage() string {
	var cfg Config
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return desc
}
