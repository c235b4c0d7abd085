package ksync

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Sync AI coding tool configs across environments"
	MsgRootLong  = `ksync keeps a small set of configuration files (AI coding assistant
settings and the like) consistent between a canonical git repository and
your environments: the local machine, docker containers, and ssh hosts.`
	MsgInitShort       = "Interactive setup: pick a profile, set repo URL, register environments"
	MsgStatusShort     = "Show git state and environment reachability for a target"
	MsgDeployShort     = "Stage and deploy a target's sync paths to its environments"
	MsgDiffShort       = "Diff local sync paths against what an environment has deployed"
	MsgPushShort       = "Commit and push the target's sync paths to its repo"
	MsgPullShort       = "Pull the target's latest config from its repo"
	MsgProfilesShort   = "Show the built-in platform profiles"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagEnv     = "Restrict to the named environment (repeatable)"
	MsgFlagTarget  = "Configured target to operate on"
	MsgFlagMessage = "Commit message"

	// Status messages
	MsgNoChanges      = "No changes."
	MsgUpToDate       = "Everything in sync."
	MsgNotConfigured  = "No configuration found. Run 'ksync init' first."
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgConfigSaved    = "Configuration saved to %s\n"
	MsgDeployedFormat = "  deployed %s\n"
)
