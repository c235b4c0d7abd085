package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/ksync/pkg/errors"
)

// Load reads the config from path. A missing file is not an error: an empty
// Config is returned so first-run commands can operate before `ksync init`.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Version: ConfigVersion, Environments: map[string]EnvironmentConfig{}}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "reading config from %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "parsing config from %s", path)
	}
	if cfg.Version == 0 {
		cfg.Version = ConfigVersion
	}
	if cfg.Environments == nil {
		cfg.Environments = map[string]EnvironmentConfig{}
	}
	for name, env := range cfg.Environments {
		env.Name = name
		cfg.Environments[name] = env
	}
	return &cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "creating config directory for %s", path)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "encoding config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "writing config to %s", path)
	}
	return nil
}
