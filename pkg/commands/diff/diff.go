// Package diff compares a target's local sync paths against what is
// currently deployed in an environment.
package diff

import (
	"os"
	"sort"
	"time"

	"github.com/arthur-debert/ksync/pkg/adapters"
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/filesystem"
	"github.com/arthur-debert/ksync/pkg/logging"
	"github.com/arthur-debert/ksync/pkg/sync"
)

// Options defines the options for the Diff command.
type Options struct {
	Config     *config.Config
	TargetName string
	// EnvNames restricts the diff to specific environments; empty means all
	// environments that have the target configured.
	EnvNames []string
	// NewAdapter overrides adapter construction; tests use it.
	NewAdapter func(*config.EnvironmentConfig) (adapters.Environment, error)
}

// EnvironmentDiff is the change set against one environment.
type EnvironmentDiff struct {
	Environment string
	DisplayName string
	Changes     []sync.Change
	Err         error
}

// Result is the outcome of one Diff invocation.
type Result struct {
	Target       string
	Environments []EnvironmentDiff
}

// Diff stages the local side (applying the environment's symlink policy, so
// the comparison sees exactly what a deploy would ship) and collects the
// remote side through the adapter.
func Diff(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.diff")
	log.Debug().Str("command", "Diff").Str("target", opts.TargetName).Msg("Executing command")
	defer logging.LogDuration(time.Now(), "diff")

	target := opts.Config.GetTarget(opts.TargetName)
	if target == nil {
		return nil, errors.Newf(errors.ErrNotFound, "no target named %q configured", opts.TargetName)
	}

	newAdapter := opts.NewAdapter
	if newAdapter == nil {
		newAdapter = adapters.New
	}

	result := &Result{Target: target.Name}

	for _, envName := range selectEnvironments(opts.Config, target.Name, opts.EnvNames) {
		env := opts.Config.GetEnvironment(envName)
		envTarget := env.Targets[target.Name]
		result.Environments = append(result.Environments,
			diffEnvironment(target, env, envTarget, newAdapter))
	}

	log.Info().Str("command", "Diff").Int("environments", len(result.Environments)).Msg("Command finished")
	return result, nil
}

func diffEnvironment(
	target *config.TargetConfig,
	env *config.EnvironmentConfig,
	envTarget config.EnvTargetConfig,
	newAdapter func(*config.EnvironmentConfig) (adapters.Environment, error),
) EnvironmentDiff {
	log := logging.GetLogger("commands.diff")
	res := EnvironmentDiff{Environment: env.Name}

	adapter, err := newAdapter(env)
	if err != nil {
		res.Err = err
		return res
	}
	res.DisplayName = adapter.DisplayName()

	if !adapter.IsAvailable() {
		res.Err = errors.Newf(errors.ErrUnreachable, "%s is not reachable", adapter.DisplayName())
		return res
	}

	staging, err := sync.Stage(target.LocalPath(), target.SyncPaths, envTarget.ResolveSymlinks)
	if staging != "" {
		defer func() {
			if rmErr := os.RemoveAll(staging); rmErr != nil {
				log.Warn().Err(rmErr).Str("staging", staging).Msg("Failed to remove staging directory")
			}
		}()
	}
	if err != nil {
		res.Err = err
		return res
	}

	local := sync.Collect(filesystem.NewOS(), staging, target.SyncPaths)
	remote := sync.CollectRemote(adapter, envTarget.TargetDir, target.SyncPaths)

	res.Changes = sync.Diff(local, remote)
	return res
}

func selectEnvironments(cfg *config.Config, targetName string, requested []string) []string {
	names := requested
	if len(names) == 0 {
		for name := range cfg.Environments {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	var selected []string
	for _, name := range names {
		env := cfg.GetEnvironment(name)
		if env == nil {
			continue
		}
		if _, ok := env.Targets[targetName]; ok {
			selected = append(selected, name)
		}
	}
	return selected
}
