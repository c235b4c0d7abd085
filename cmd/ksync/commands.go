package ksync

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ksync/internal/version"
	"github.com/arthur-debert/ksync/pkg/commands/deploy"
	"github.com/arthur-debert/ksync/pkg/commands/diff"
	"github.com/arthur-debert/ksync/pkg/commands/pull"
	"github.com/arthur-debert/ksync/pkg/commands/push"
	"github.com/arthur-debert/ksync/pkg/commands/status"
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
	"github.com/arthur-debert/ksync/pkg/profiles"
	"github.com/arthur-debert/ksync/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "ksync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: MsgProfilesShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s\n\n", style.Heading("Available profiles"))
			for _, name := range profiles.Names() {
				profile, _ := profiles.Get(name)
				fmt.Fprintf(out, "%s\n", style.Success(profile.Name))
				fmt.Fprintf(out, "  Directory: %s\n", style.Path(profile.LocalDir))
				fmt.Fprintf(out, "  Sync paths: %s\n\n", strings.Join(profile.SyncPaths, ", "))
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ksync version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// targetNamesCompletion provides shell completion for configured target names.
func targetNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, t := range cfg.Targets {
		names = append(names, t.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// loadConfigAndTarget loads the config and resolves the target to operate
// on: the named one, or the sole configured target when the flag is empty.
func loadConfigAndTarget(targetName string) (*config.Config, string, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, "", err
	}
	if len(cfg.Targets) == 0 {
		return nil, "", errors.New(errors.ErrNotFound, MsgNotConfigured)
	}

	if targetName == "" {
		if len(cfg.Targets) > 1 {
			return nil, "", errors.Newf(errors.ErrInvalidInput,
				"%d targets configured, pick one with --target", len(cfg.Targets))
		}
		targetName = cfg.Targets[0].Name
	}
	return cfg, targetName, nil
}

func newStatusCmd() *cobra.Command {
	var targetName string

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, target, err := loadConfigAndTarget(targetName)
			if err != nil {
				return err
			}

			result, err := status.Status(status.Options{Config: cfg, TargetName: target})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s\n", style.Heading(fmt.Sprintf("Target: %s", result.Target)))
			if result.GitErr != nil {
				fmt.Printf("  git: %s\n", style.Error(result.GitErr.Error()))
			} else {
				printGitStatus(result)
			}

			fmt.Printf("\n%s\n", style.Heading("Environments"))
			for _, env := range result.Environments {
				state := style.Success("reachable")
				if !env.Available {
					state = style.Error("unreachable")
				}
				fmt.Printf("  %s (%s): %s\n", env.Environment, env.DisplayName, state)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", targetNamesCompletion)
	return cmd
}

func printGitStatus(result *status.Result) {
	if len(result.Git.Modified) == 0 {
		fmt.Printf("  git: %s\n", style.Success("clean"))
	} else {
		fmt.Printf("  git: %s\n", style.Warning(fmt.Sprintf("%d modified", len(result.Git.Modified))))
		for _, line := range result.Git.Modified {
			fmt.Printf("    %s\n", style.Muted(line))
		}
	}
	if result.Git.Ahead > 0 || result.Git.Behind > 0 {
		fmt.Printf("  %s\n", style.Warning(fmt.Sprintf("%d ahead, %d behind", result.Git.Ahead, result.Git.Behind)))
	}
}

func newDeployCmd() *cobra.Command {
	var (
		targetName string
		envNames   []string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: MsgDeployShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, target, err := loadConfigAndTarget(targetName)
			if err != nil {
				return err
			}

			result, err := deploy.Deploy(deploy.Options{
				Config:     cfg,
				TargetName: target,
				EnvNames:   envNames,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			var failed bool
			for _, env := range result.Environments {
				fmt.Printf("\n%s\n", style.Heading(fmt.Sprintf("%s (%s)", env.Environment, env.DisplayName)))
				if env.Err != nil {
					failed = true
					fmt.Printf("  %s\n", style.Error(env.Err.Error()))
					continue
				}
				for _, sp := range env.Deployed {
					fmt.Printf(MsgDeployedFormat, style.Success(sp))
				}
			}
			if result.DryRun {
				fmt.Println(style.Warning(MsgDryRunNotice))
			}
			if failed {
				return fmt.Errorf("deploy failed for at least one environment")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", targetNamesCompletion)
	cmd.Flags().StringArrayVarP(&envNames, "env", "e", nil, MsgFlagEnv)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}

func newDiffCmd() *cobra.Command {
	var (
		targetName string
		envNames   []string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: MsgDiffShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, target, err := loadConfigAndTarget(targetName)
			if err != nil {
				return err
			}

			result, err := diff.Diff(diff.Options{
				Config:     cfg,
				TargetName: target,
				EnvNames:   envNames,
			})
			if err != nil {
				return err
			}

			for _, env := range result.Environments {
				fmt.Printf("\n%s\n", style.Heading(fmt.Sprintf("%s (%s)", env.Environment, env.DisplayName)))
				if env.Err != nil {
					fmt.Printf("  %s\n", style.Error(env.Err.Error()))
					continue
				}
				if len(env.Changes) == 0 {
					fmt.Printf("  %s\n", style.Success(MsgUpToDate))
					continue
				}
				for _, change := range env.Changes {
					fmt.Println(change.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", targetNamesCompletion)
	cmd.Flags().StringArrayVarP(&envNames, "env", "e", nil, MsgFlagEnv)
	return cmd
}

func newPushCmd() *cobra.Command {
	var (
		targetName string
		message    string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: MsgPushShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, target, err := loadConfigAndTarget(targetName)
			if err != nil {
				return err
			}

			result, err := push.Push(push.Options{
				Config:     cfg,
				TargetName: target,
				Message:    message,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			if result.CommitHash == "" {
				fmt.Println(style.Muted(MsgNoChanges))
				return nil
			}
			fmt.Printf("%s %s\n", style.Success(result.CommitHash),
				style.Muted(fmt.Sprintf("(%d files)", len(result.FilesStaged))))
			if dryRun {
				fmt.Println(style.Warning(MsgDryRunNotice))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", targetNamesCompletion)
	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}

func newPullCmd() *cobra.Command {
	var (
		targetName string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: MsgPullShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, target, err := loadConfigAndTarget(targetName)
			if err != nil {
				return err
			}

			msg, err := pull.Pull(pull.Options{
				Config:     cfg,
				TargetName: target,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", targetNamesCompletion)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	return cmd
}
