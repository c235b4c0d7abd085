// Package deploy stages a target's sync paths and pushes them into one or
// more configured environments.
package deploy

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/ksync/pkg/adapters"
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
	"github.com/arthur-debert/ksync/pkg/sync"
)

// Options defines the options for the Deploy command.
type Options struct {
	// Config is the loaded ksync configuration.
	Config *config.Config
	// TargetName selects which configured target to deploy.
	TargetName string
	// EnvNames restricts deployment to specific environments. Empty means
	// every environment that has the target configured.
	EnvNames []string
	// DryRun stages and reports without touching any environment.
	DryRun bool
	// NewAdapter overrides adapter construction; tests use it. Nil means
	// adapters.New.
	NewAdapter func(*config.EnvironmentConfig) (adapters.Environment, error)
}

// EnvironmentResult is the outcome for one environment.
type EnvironmentResult struct {
	Environment string
	DisplayName string
	Deployed    []string
	Err         error
}

// Result is the outcome of one Deploy invocation.
type Result struct {
	Target       string
	DryRun       bool
	Environments []EnvironmentResult
}

// Deploy stages the target's sync paths once per environment (the symlink
// policy is per environment-target) and runs clean+deploy against each
// selected environment. A failing environment does not stop the others.
func Deploy(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.deploy")
	log.Debug().Str("command", "Deploy").Str("target", opts.TargetName).Msg("Executing command")
	defer logging.LogDuration(time.Now(), "deploy")

	target := opts.Config.GetTarget(opts.TargetName)
	if target == nil {
		return nil, errors.Newf(errors.ErrNotFound, "no target named %q configured", opts.TargetName)
	}

	newAdapter := opts.NewAdapter
	if newAdapter == nil {
		newAdapter = adapters.New
	}

	result := &Result{Target: target.Name, DryRun: opts.DryRun}

	for _, envName := range selectEnvironments(opts.Config, target.Name, opts.EnvNames) {
		env := opts.Config.GetEnvironment(envName)
		envTarget := env.Targets[target.Name]
		result.Environments = append(result.Environments,
			deployToEnvironment(target, env, envTarget, newAdapter, opts.DryRun))
	}

	log.Info().Str("command", "Deploy").Int("environments", len(result.Environments)).Msg("Command finished")
	return result, nil
}

func deployToEnvironment(
	target *config.TargetConfig,
	env *config.EnvironmentConfig,
	envTarget config.EnvTargetConfig,
	newAdapter func(*config.EnvironmentConfig) (adapters.Environment, error),
	dryRun bool,
) EnvironmentResult {
	log := logging.GetLogger("commands.deploy")
	res := EnvironmentResult{Environment: env.Name}

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
		// The staging area must go away on every exit path.
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

	if dryRun {
		res.Deployed = presentInStaging(staging, target.SyncPaths)
		return res
	}

	if err := adapter.Clean(envTarget.TargetDir, target.SyncPaths); err != nil {
		res.Err = err
		return res
	}

	deployed, err := adapter.Deploy(staging, envTarget.TargetDir, target.SyncPaths)
	res.Deployed = deployed
	res.Err = err
	return res
}

// selectEnvironments returns the environments to deploy to, restricted to
// requested names, keeping only those that have the target configured.
// Order follows the request when given, config-sorted names otherwise.
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

func presentInStaging(staging string, syncPaths []string) []string {
	var present []string
	for _, sp := range syncPaths {
		if _, err := os.Stat(filepath.Join(staging, sp)); err == nil {
			present = append(present, sp)
		}
	}
	return present
}
