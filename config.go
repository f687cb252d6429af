package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Flags are the command line overrides; empty fields fall through to the
// environment, then the toml file, then defaults.
type Flags struct {
	Host       string
	Port       string
	DataDir    string
	ConfigPath string
}

type tomlConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	DataDir string `toml:"data_dir"`
	Seed    int64  `toml:"seed"`
}

type Config struct {
	flags  Flags
	getenv func(string) string
	toml   tomlConfig
}

// NewConfig loads tombola.toml (if one exists) and captures the flag and
// env sources. getenv is injected so tests can fake the environment.
func NewConfig(tfs TombolaFS, flags Flags, getenv func(string) string) (*Config, error) {
	c := &Config{
		flags:  flags,
		getenv: getenv,
	}

	path, err := findConfigFile(tfs, flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		log.Debug().Msg("No tombola.toml found, using flags/env/defaults")
		return c, nil
	}

	raw, err := afero.ReadFile(tfs, path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(raw, &c.toml); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Loaded config file")
	return c, nil
}

func findConfigFile(tfs TombolaFS, explicit string) (string, error) {
	if explicit != "" {
		if _, err := tfs.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %q: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{"tombola.toml", "/tombola.toml"}
	if home, err := tfs.HomeDir(); err == nil {
		candidates = append(candidates, home+"/.tombola.toml")
	}

	for _, p := range candidates {
		if _, err := tfs.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, afero.ErrFileNotFound) {
			return "", err
		}
	}
	return "", nil
}

// pick returns the first non-empty value
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) Host() string {
	return pick(c.flags.Host, c.getenv("HOST"), c.toml.Host, "127.0.0.1")
}

func (c *Config) Port() string {
	return pick(c.flags.Port, c.getenv("PORT"), c.toml.Port, "1225")
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host(), c.Port())
}

func (c *Config) DataDir() string {
	return pick(c.flags.DataDir, c.getenv("TOMBOLA_DATA_DIR"), c.toml.DataDir, "data")
}

// Seed is the optional deterministic spin seed; zero means seed from the
// clock.
func (c *Config) Seed() int64 {
	return c.toml.Seed
}
