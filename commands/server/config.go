package server

import (
	"os"
	"path/filepath"

	"github.com/iov-one/synto/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the node configuration inside the home dir.
const ConfigFile = "config.yaml"

// Supported state backends.
const (
	BackendIAVL   = "iavl"
	BackendPebble = "pebble"
)

// Config is the node configuration. It is read from the home dir and
// the flags of a command override it.
type Config struct {
	// Bind is the address the abci server listens on.
	Bind string `yaml:"bind"`
	// Backend selects the state database, either iavl or pebble.
	Backend string `yaml:"backend"`
	// DBName is the database directory, relative to the home dir.
	DBName string `yaml:"db_name"`
	// Debug returns full error stacks to clients.
	Debug bool `yaml:"debug"`
}

// DefaultConfig is used when the home dir holds no configuration.
func DefaultConfig() Config {
	return Config{
		Bind:    "tcp://localhost:26658",
		Backend: BackendIAVL,
		DBName:  "synto.db",
	}
}

// Validate checks the backend is known and the paths are set.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendIAVL, BackendPebble:
	default:
		return errors.Wrapf(errors.ErrInput, "unknown backend %q", c.Backend)
	}
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	if c.DBName == "" {
		return errors.Wrap(errors.ErrEmpty, "db name")
	}
	return nil
}

// DBPath returns the database location for the given home dir. An empty
// home means an in memory database.
func (c Config) DBPath(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, c.DBName)
}

// LoadConfig reads the configuration of the home dir. Missing values are
// taken from DefaultConfig.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	raw, err := os.ReadFile(filepath.Join(home, ConfigFile))
	if os.IsNotExist(err) {
		return conf, nil
	}
	if err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse %s: %s", ConfigFile, err)
	}
	return conf, conf.Validate()
}

// SaveConfig writes the configuration into the home dir.
func SaveConfig(home string, conf Config) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	raw, err := yaml.Marshal(conf)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return os.WriteFile(filepath.Join(home, ConfigFile), raw, 0600)
}
