// Package status reports a target's git state and the reachability of each
// configured environment.
package status

import (
	"sort"

	"github.com/arthur-debert/ksync/pkg/adapters"
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/git"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// GitClient is the slice of the git wrapper the status command needs.
type GitClient interface {
	StatusForPaths(syncPaths []string) (git.Status, error)
}

// Options defines the options for the Status command.
type Options struct {
	Config     *config.Config
	TargetName string
	// Git overrides the git client; tests use it. Nil constructs one for
	// the target's local directory.
	Git GitClient
	// NewAdapter overrides adapter construction; tests use it.
	NewAdapter func(*config.EnvironmentConfig) (adapters.Environment, error)
}

// EnvironmentStatus is one environment's reachability.
type EnvironmentStatus struct {
	Environment string
	DisplayName string
	Available   bool
}

// Result is the outcome of one Status invocation.
type Result struct {
	Target       string
	Git          git.Status
	GitErr       error
	Environments []EnvironmentStatus
}

// Status collects git state for the target's sync paths and probes every
// environment that has the target configured.
func Status(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("command", "Status").Str("target", opts.TargetName).Msg("Executing command")

	target := opts.Config.GetTarget(opts.TargetName)
	if target == nil {
		return nil, errors.Newf(errors.ErrNotFound, "no target named %q configured", opts.TargetName)
	}

	gitClient := opts.Git
	if gitClient == nil {
		gitClient = git.New(target.LocalPath(), target.GitEnv)
	}
	newAdapter := opts.NewAdapter
	if newAdapter == nil {
		newAdapter = adapters.New
	}

	result := &Result{Target: target.Name}
	result.Git, result.GitErr = gitClient.StatusForPaths(target.SyncPaths)

	var envNames []string
	for name := range opts.Config.Environments {
		envNames = append(envNames, name)
	}
	sort.Strings(envNames)

	for _, name := range envNames {
		env := opts.Config.GetEnvironment(name)
		if _, ok := env.Targets[target.Name]; !ok {
			continue
		}

		envStatus := EnvironmentStatus{Environment: name}
		adapter, err := newAdapter(env)
		if err == nil {
			envStatus.DisplayName = adapter.DisplayName()
			envStatus.Available = adapter.IsAvailable()
		}
		result.Environments = append(result.Environments, envStatus)
	}

	log.Info().Str("command", "Status").Msg("Command finished")
	return result, nil
}
