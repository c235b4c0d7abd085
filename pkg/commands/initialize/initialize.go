// Package initialize assembles configuration from setup-wizard answers.
// The interactive prompting itself lives in the CLI layer; this package
// only applies the collected answers to a Config.
package initialize

import (
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
	"github.com/arthur-debert/ksync/pkg/profiles"
)

// EnvironmentSpec is one environment the user asked to register.
type EnvironmentSpec struct {
	Name            string
	Type            string
	Image           string
	Host            string
	TargetDir       string
	ResolveSymlinks bool
}

// Options defines the options for the Initialize command.
type Options struct {
	Config       *config.Config
	ProfileName  string
	Repo         string
	GitEnv       map[string]string
	Environments []EnvironmentSpec
}

// Initialize creates or updates the target for the chosen profile and
// registers the requested environments. The caller persists the config.
func Initialize(opts Options) error {
	log := logging.GetLogger("commands.initialize")
	log.Debug().Str("command", "Initialize").Str("profile", opts.ProfileName).Msg("Executing command")

	profile, ok := profiles.Get(opts.ProfileName)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "no profile named %q", opts.ProfileName)
	}

	if existing := opts.Config.GetTarget(profile.Name); existing != nil {
		existing.Repo = opts.Repo
		if opts.GitEnv != nil {
			existing.GitEnv = opts.GitEnv
		}
	} else {
		opts.Config.Targets = append(opts.Config.Targets, config.TargetConfig{
			Name:      profile.Name,
			Profile:   profile.Name,
			Repo:      opts.Repo,
			LocalDir:  profile.LocalDir,
			SyncPaths: append([]string(nil), profile.SyncPaths...),
			GitEnv:    opts.GitEnv,
		})
	}

	if opts.Config.Environments == nil {
		opts.Config.Environments = map[string]config.EnvironmentConfig{}
	}
	for _, spec := range opts.Environments {
		opts.Config.Environments[spec.Name] = config.EnvironmentConfig{
			Name:  spec.Name,
			Type:  spec.Type,
			Image: spec.Image,
			Host:  spec.Host,
			Targets: map[string]config.EnvTargetConfig{
				profile.Name: {
					TargetDir:       spec.TargetDir,
					ResolveSymlinks: spec.ResolveSymlinks,
				},
			},
		}
	}

	log.Info().Str("command", "Initialize").Msg("Command finished")
	return nil
}
