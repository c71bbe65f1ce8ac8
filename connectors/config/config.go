package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fleet-stats/domain/config"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither a flag nor CONFIG_PATH names a config file.
const DefaultPath = "./config.yml"

// Resolve picks the config path: explicit flag value, then CONFIG_PATH, then DefaultPath.
func Resolve(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p, true
	}
	return DefaultPath, false
}

// Load parses the YAML configuration file at path and applies defaults.
// A missing file is only an error when the path was given explicitly.
func Load(path string, explicit bool) (*config.Config, error) {
	var c config.Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		slog.Info("config.default", "path", path)
	case err != nil:
		return nil, fmt.Errorf("config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		slog.Info(fmt.Sprintf("Loaded config: %s", path))
	}
	c.ApplyDefaults()
	return &c, nil
}
