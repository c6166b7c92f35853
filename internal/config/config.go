// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		// Directory holds the persisted state document and the OAuth token.
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Categories struct {
		// SeedFile optionally points at a YAML file overriding the built-in
		// category keyword rules.
		SeedFile string `mapstructure:"seed_file" yaml:"seed_file"`
	} `mapstructure:"categories" yaml:"categories"`

	Sync struct {
		ClientID     string `mapstructure:"client_id" yaml:"client_id"`
		ClientSecret string `mapstructure:"client_secret" yaml:"-"`
		TokenFile    string `mapstructure:"token_file" yaml:"token_file"`
	} `mapstructure:"sync" yaml:"sync"`
}

// Load initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then MONEYFLOW_* env variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.moneyflow")
	v.AddConfigPath(".moneyflow")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MONEYFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars; a broken config file
			// should not make the CLI unusable.
			fmt.Fprintf(os.Stderr, "warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Drive client secret is only ever read from the environment.
	if err := v.BindEnv("sync.client_secret", "MONEYFLOW_SYNC_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to bind client secret variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("data.directory", filepath.Join(home, ".moneyflow"))
	v.SetDefault("categories.seed_file", "")
	v.SetDefault("sync.client_id", "")
	v.SetDefault("sync.token_file", filepath.Join(home, ".moneyflow", "token.json"))
}

func validate(c *Config) error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	if c.Data.Directory == "" {
		return fmt.Errorf("data.directory must not be empty")
	}
	return nil
}
