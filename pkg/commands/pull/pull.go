// Package pull fetches a target's latest config from its repo.
package pull

import (
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/git"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// GitClient is the slice of the git wrapper the pull command needs.
type GitClient interface {
	Pull(dryRun bool) (string, error)
}

// Options defines the options for the Pull command.
type Options struct {
	Config     *config.Config
	TargetName string
	DryRun     bool
	// Git overrides the git client; tests use it.
	Git GitClient
}

// Pull updates the target's local directory from its upstream repo and
// returns git's output message.
func Pull(opts Options) (string, error) {
	log := logging.GetLogger("commands.pull")
	log.Debug().Str("command", "Pull").Str("target", opts.TargetName).Msg("Executing command")

	target := opts.Config.GetTarget(opts.TargetName)
	if target == nil {
		return "", errors.Newf(errors.ErrNotFound, "no target named %q configured", opts.TargetName)
	}

	gitClient := opts.Git
	if gitClient == nil {
		gitClient = git.New(target.LocalPath(), target.GitEnv)
	}

	msg, err := gitClient.Pull(opts.DryRun)
	if err != nil {
		return "", err
	}

	log.Info().Str("command", "Pull").Msg("Command finished")
	return msg, nil
}
