package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/cfiloc"
	"github.com/pelletier/go-toml/v2"
)

// Generator names accepted by --generator and the config file.
const (
	GeneratorNative = "native"
	GeneratorNode   = "node"
)

// Config is the optional TOML configuration file. Empty values fall back
// to defaults; flags and environment variables take precedence.
type Config struct {
	DB        string     `toml:"db"`
	CacheDir  string     `toml:"cache_dir"`
	Generator string     `toml:"generator"`
	Node      NodeConfig `toml:"node"`
}

// NodeConfig configures the external epub-cfi-generator.
type NodeConfig struct {
	Command string `toml:"command"`
	Script  string `toml:"script"`
}

// LoadConfig reads the config file at path. A missing file yields an empty
// config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "invalid config %s: %v", path, err)
	}

	switch cfg.Generator {
	case "", GeneratorNative, GeneratorNode:
	default:
		return nil, cfiloc.Errorf(cfiloc.EINVALID, "invalid config %s: unknown generator %q", path, cfg.Generator)
	}

	return cfg, nil
}
