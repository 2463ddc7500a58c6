package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/iov-one/custody/errors"
)

// EnvPrefix is prepended to the name of every environment variable that
// overrides the node configuration.
const EnvPrefix = "CUSTODY_"

// ConfigFile is the node configuration file name, relative to the config
// directory of the home.
const ConfigFile = "custodyd.toml"

// Config is the node-local configuration. Chain-wide settings live in the
// genesis file instead.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind" env:"BIND"`
	// DBPath is the state database directory. Relative paths are resolved
	// against the home directory. An empty value keeps state in memory.
	DBPath string `toml:"db_path" env:"DB_PATH"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
	// Debug returns call stacks with failed transaction results.
	Debug bool `toml:"debug" env:"DEBUG"`
	// MetricsAddr enables the prometheus endpoint when set.
	MetricsAddr string `toml:"metrics_addr" env:"METRICS_ADDR"`
}

// DefaultConfig returns the configuration used when nothing else is
// provided.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		DBPath:   "data/custody.db",
		LogLevel: "info",
	}
}

// LoadConfig returns the default configuration, updated with the content of
// the config file found in home (if any), then with the environment.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(home, "config", ConfigFile)
	switch _, err := os.Stat(path); {
	case err == nil:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(errors.ErrInput, "config file %s: %s", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "environment: %s", err)
	}
	return cfg, nil
}

// ResolveDBPath returns the absolute database location, or an empty string
// for an in-memory database.
func (c Config) ResolveDBPath(home string) string {
	if c.DBPath == "" || filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return filepath.Join(home, c.DBPath)
}

// WriteConfig stores given configuration in the home config directory.
func WriteConfig(home string, cfg Config) error {
	dir := filepath.Join(home, "config")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fd, err := os.Create(filepath.Join(dir, ConfigFile))
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
