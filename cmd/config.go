package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/finkit"
	"github.com/etnz/finkit/api"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "FIN"

// Config holds the settings shared by every command.
type Config struct {
	Currency    string       `mapstructure:"currency"`
	Sensitivity float64      `mapstructure:"sensitivity"`
	IRR         IRRConfig    `mapstructure:"irr"`
	Server      ServerConfig `mapstructure:"server"`
	Log         LogConfig    `mapstructure:"log"`
}

type IRRConfig struct {
	MaxIterations int     `mapstructure:"max_iterations"`
	Tolerance     float64 `mapstructure:"tolerance"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads the configuration from file, or from the first finkit.yaml
// found in the current directory and $HOME/.config/finkit, then applies the
// FIN_* environment variables. A missing configuration file is not an error.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("finkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "finkit"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.Currency = strings.ToUpper(config.Currency)
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("currency", "SEK")
	v.SetDefault("sensitivity", 0.10)
	v.SetDefault("irr.max_iterations", 1000)
	v.SetDefault("irr.tolerance", 1e-6)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	var errs []error
	if _, err := finkit.Number(c.Sensitivity); err != nil {
		errs = append(errs, fmt.Errorf("sensitivity: %w", err))
	} else if c.Sensitivity < 0 {
		errs = append(errs, fmt.Errorf("sensitivity must not be negative, got %v", c.Sensitivity))
	}
	if c.IRR.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("irr.max_iterations must be positive, got %d", c.IRR.MaxIterations))
	}
	if _, err := finkit.Number(c.IRR.Tolerance); err != nil {
		errs = append(errs, fmt.Errorf("irr.tolerance: %w", err))
	} else if c.IRR.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("irr.tolerance must be positive, got %v", c.IRR.Tolerance))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Options converts a validated configuration into engine options.
func (c *Config) Options() api.Options {
	tolerance, _ := finkit.Number(c.IRR.Tolerance)
	sensitivity, _ := finkit.Number(c.Sensitivity)
	return api.Options{
		Solver: finkit.Solver{
			MaxIterations: c.IRR.MaxIterations,
			Tolerance:     tolerance,
		},
		Sensitivity: sensitivity,
	}
}
