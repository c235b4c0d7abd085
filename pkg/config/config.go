package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ConfigVersion is the current on-disk config format version
const ConfigVersion = 1

// TargetConfig is a syncable config directory backed by a git repo.
type TargetConfig struct {
	Name      string            `toml:"name"`
	Profile   string            `toml:"profile"`
	Repo      string            `toml:"repo"`
	LocalDir  string            `toml:"local_dir"`
	SyncPaths []string          `toml:"sync_paths"`
	GitEnv    map[string]string `toml:"git_env,omitempty"`
}

// LocalPath returns LocalDir with a leading ~ expanded to the user's home.
func (t TargetConfig) LocalPath() string {
	return expandHome(t.LocalDir)
}

// EnvTargetConfig holds per-target settings within an environment.
type EnvTargetConfig struct {
	TargetDir       string `toml:"target_dir"`
	ResolveSymlinks bool   `toml:"resolve_symlinks"`
}

// EnvironmentConfig describes a deployment environment (docker container,
// ssh host, or the local machine).
type EnvironmentConfig struct {
	Name    string                     `toml:"-"`
	Type    string                     `toml:"type"`
	Targets map[string]EnvTargetConfig `toml:"targets"`

	// Docker-specific
	Image string `toml:"image,omitempty"`
	// SSH-specific
	Host string `toml:"host,omitempty"`
}

// Config is the root configuration object.
type Config struct {
	Version      int                          `toml:"version"`
	Targets      []TargetConfig               `toml:"targets"`
	Environments map[string]EnvironmentConfig `toml:"environments"`
}

// GetTarget returns the target with the given name, or nil if not configured.
func (c *Config) GetTarget(name string) *TargetConfig {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			return &c.Targets[i]
		}
	}
	return nil
}

// GetEnvironment returns the environment with the given name, or nil.
func (c *Config) GetEnvironment(name string) *EnvironmentConfig {
	env, ok := c.Environments[name]
	if !ok {
		return nil
	}
	env.Name = name
	return &env
}

// DefaultPath returns the config file location under the XDG config home
// (typically ~/.config/ksync/config.toml).
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "ksync", "config.toml")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
