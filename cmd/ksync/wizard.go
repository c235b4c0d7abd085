package ksync

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ksync/pkg/commands/initialize"
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/profiles"
	"github.com/arthur-debert/ksync/pkg/style"
)

func newInitCmd() *cobra.Command {
	var (
		profileName string
		repo        string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}

			opts, err := runWizard(cfg, profileName, repo)
			if err != nil {
				return err
			}
			if err := initialize.Initialize(*opts); err != nil {
				return err
			}
			if err := config.Save(cfg, ""); err != nil {
				return err
			}

			fmt.Printf(MsgConfigSaved, style.Path(config.DefaultPath()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to set up (skips the prompt)")
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Git repository URL (skips the prompt)")
	return cmd
}

// runWizard prompts for whatever the flags did not provide. Prompts only
// run on a terminal; in a pipe the flags must carry the answers.
func runWizard(cfg *config.Config, profileName, repo string) (*initialize.Options, error) {
	interactive := style.IsTerminal()

	if profileName == "" {
		if !interactive {
			return nil, fmt.Errorf("--profile is required when not running interactively")
		}
		picked, err := pterm.DefaultInteractiveSelect.
			WithOptions(profiles.Names()).
			Show("Which profile do you want to sync?")
		if err != nil {
			return nil, err
		}
		profileName = picked
	}

	if repo == "" && interactive {
		answer, err := pterm.DefaultInteractiveTextInput.
			Show("Git repository URL for this config (empty to skip git)")
		if err != nil {
			return nil, err
		}
		repo = answer
	}

	opts := &initialize.Options{
		Config:      cfg,
		ProfileName: profileName,
		Repo:        repo,
	}

	if !interactive {
		return opts, nil
	}

	profile, _ := profiles.Get(profileName)
	for {
		more, err := pterm.DefaultInteractiveConfirm.Show("Register an environment?")
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}

		spec, err := promptEnvironment(profile.LocalDir)
		if err != nil {
			return nil, err
		}
		opts.Environments = append(opts.Environments, *spec)
	}

	return opts, nil
}

func promptEnvironment(defaultTargetDir string) (*initialize.EnvironmentSpec, error) {
	name, err := pterm.DefaultInteractiveTextInput.Show("Environment name")
	if err != nil {
		return nil, err
	}

	envType, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"local", "docker", "ssh"}).
		Show("Environment type")
	if err != nil {
		return nil, err
	}

	spec := &initialize.EnvironmentSpec{Name: name, Type: envType}

	switch envType {
	case "docker":
		spec.Image, err = pterm.DefaultInteractiveTextInput.Show("Docker image to match running containers against")
	case "ssh":
		spec.Host, err = pterm.DefaultInteractiveTextInput.Show("SSH host (as used on the ssh command line)")
	}
	if err != nil {
		return nil, err
	}

	spec.TargetDir, err = pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultTargetDir).
		Show("Directory to deploy into on that environment")
	if err != nil {
		return nil, err
	}

	spec.ResolveSymlinks, err = pterm.DefaultInteractiveConfirm.
		Show("Resolve symlinks when deploying there (copy link targets instead of links)?")
	if err != nil {
		return nil, err
	}

	return spec, nil
}
