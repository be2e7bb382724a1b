package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mensura/mensura/errors"
)

// EnvPrefix is the prefix for environment variable overrides
// (MENSURA_GENERATE_OUT, MENSURA_LOG_JSON, ...).
const EnvPrefix = "MENSURA"

// ConfigFileName is the optional project config searched in the working
// directory.
const ConfigFileName = "mensura.toml"

// Load reads configuration from the working directory's mensura.toml (if
// present) and the environment. A missing project config is the normal
// case, not an error.
func Load() (*Config, error) {
	v := NewViper()

	if _, err := os.Stat(ConfigFileName); err == nil {
		v.SetConfigFile(ConfigFileName)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", ConfigFileName)
		}
	}

	return LoadWithViper(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// NewViper builds a viper instance with defaults and environment binding
// applied, for callers that bind flags on top.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}
