// Package config loads carrier's runtime configuration from YAML plus command-line
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/carrier/internal/logging"
	"github.com/aretw0/carrier/pkg/session"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// SessionConfig declares a session to register at startup.
type SessionConfig struct {
	ID       string         `mapstructure:"id" yaml:"id"`
	Settings map[string]any `mapstructure:"settings" yaml:"settings"`
}

// Config is the process configuration.
type Config struct {
	Workers        int             `mapstructure:"workers" yaml:"workers"`
	LogLevel       string          `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string          `mapstructure:"log_format" yaml:"log_format"` // text | json
	Listen         string          `mapstructure:"listen" yaml:"listen"`
	CurrentSession string          `mapstructure:"current_session" yaml:"current_session"`
	Sessions       []SessionConfig `mapstructure:"sessions" yaml:"sessions"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Workers:   4,
		LogLevel:  "info",
		LogFormat: "text",
		Listen:    ":8080",
	}
}

// Load reads path (YAML) over the defaults and then applies overrides, whose keys
// are the mapstructure names above. A missing file is not an error.
func Load(path string, overrides map[string]any) (Config, error) {
	raw := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	for k, v := range overrides {
		raw[k] = v
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Logger builds the logger described by the configuration.
func (c Config) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	switch c.LogFormat {
	case "", "text":
		return logging.New(level), nil
	case "json":
		return logging.NewJSON(os.Stderr, level), nil
	}
	return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
}

// Apply registers the configured sessions and selects the current one.
func (c Config) Apply(reg *session.Registry) error {
	for _, sc := range c.Sessions {
		reg.Create(sc.ID, sc.Settings)
	}
	if c.CurrentSession != "" {
		if err := reg.SetCurrent(c.CurrentSession); err != nil {
			return fmt.Errorf("current_session: %w", err)
		}
	}
	return nil
}
