package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load resolves the effective configuration.
//
// With an explicit path the file must exist. With an empty path, ocrenv.yaml
// in the working directory is used if present; otherwise defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Default(), nil
			}
			return nil, fmt.Errorf("failed to stat %s: %w", DefaultConfigFile, err)
		}
		path = DefaultConfigFile
	}
	return LoadFile(path)
}

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// WriteYAML persists the configuration to a YAML file.
func WriteYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# ocrenv configuration. Run `ocrenv apply` to provision.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil { // #nosec G306
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
