// Package push commits a target's sync paths and pushes them to its repo.
package push

import (
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/git"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// GitClient is the slice of the git wrapper the push command needs.
type GitClient interface {
	Push(syncPaths []string, message string, dryRun bool) (git.PushResult, error)
}

// Options defines the options for the Push command.
type Options struct {
	Config     *config.Config
	TargetName string
	Message    string
	DryRun     bool
	// Git overrides the git client; tests use it.
	Git GitClient
}

// Push stages, commits, and pushes the target's sync paths.
func Push(opts Options) (git.PushResult, error) {
	log := logging.GetLogger("commands.push")
	log.Debug().Str("command", "Push").Str("target", opts.TargetName).Msg("Executing command")

	target := opts.Config.GetTarget(opts.TargetName)
	if target == nil {
		return git.PushResult{}, errors.Newf(errors.ErrNotFound, "no target named %q configured", opts.TargetName)
	}

	gitClient := opts.Git
	if gitClient == nil {
		gitClient = git.New(target.LocalPath(), target.GitEnv)
	}

	message := opts.Message
	if message == "" {
		message = "Sync " + target.Name + " config"
	}

	result, err := gitClient.Push(target.SyncPaths, message, opts.DryRun)
	if err != nil {
		return result, err
	}

	log.Info().Str("command", "Push").Str("commit", result.CommitHash).Msg("Command finished")
	return result, nil
}
