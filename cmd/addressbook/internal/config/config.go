// Package config loads the addressbook CLI configuration from defaults, an
// optional YAML file and ADDRESSBOOK_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ADDRESSBOOK"

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	Birthdays BirthdaysConfig `mapstructure:"birthdays"`
}

// StorageConfig selects where the address book is persisted.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=file sqlite postgres"`
	// Path is the YAML file or SQLite database; unused by postgres.
	Path string `mapstructure:"path" validate:"required_unless=Driver postgres"`
	URL  string `mapstructure:"url" validate:"required_if=Driver postgres"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Mode  string `mapstructure:"mode" validate:"required,oneof=production development"`
}

type BirthdaysConfig struct {
	// Window is how many days ahead the birthdays command looks.
	Window int `mapstructure:"window" validate:"gte=0,lte=366"`
}

var defaults = map[string]any{
	"storage.driver":   DriverFile,
	"storage.path":     "addressbook.yaml",
	"storage.url":      "",
	"log.level":        "warn",
	"log.mode":         "production",
	"birthdays.window": 7,
}

// EnvVar returns the environment variable overriding key, e.g.
// ADDRESSBOOK_STORAGE_DRIVER for storage.driver.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load builds the configuration. configPath may be empty; if set, the file
// must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", configPath, err)
			}
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for k := range defaults {
		if err := v.BindEnv(k, EnvVar(k)); err != nil {
			return nil, fmt.Errorf("binding environment variable %s: %w", EnvVar(k), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
