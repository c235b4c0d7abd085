package adapters

import (
	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
)

// Environment is the capability interface every deployment target
// implements. Implementations only return errors when the target itself
// cannot be reached; a command failing inside a reachable target surfaces
// through its exit code instead.
type Environment interface {
	// IsAvailable probes reachability without blocking indefinitely.
	IsAvailable() bool

	// Run executes argv in the target's namespace.
	Run(argv []string) (RunResult, error)

	// ReadFile returns file content. The second return value is false when
	// the file is missing or unreadable; this is never an error.
	ReadFile(path string) (string, bool)

	// ListFiles recursively lists regular files under path, sorted
	// lexicographically and relative to path. A missing path or an
	// unreachable target yields an empty list.
	ListFiles(path string) []string

	// Deploy transfers each sync path present in stagingDir into targetDir,
	// creating targetDir first. Existing content at a destination is
	// replaced wholesale. It returns the sync paths actually transferred,
	// in input order.
	Deploy(stagingDir, targetDir string, syncPaths []string) ([]string, error)

	// Clean removes each targetDir/syncPath. Removing an absent path is a
	// no-op.
	Clean(targetDir string, syncPaths []string) error

	// DisplayName is a human-readable identity for status messages.
	DisplayName() string
}

// RunResult captures one command execution inside an environment.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// New constructs the adapter for an environment config, keyed by its type tag.
func New(cfg *config.EnvironmentConfig) (Environment, error) {
	switch cfg.Type {
	case "local":
		return NewLocal(), nil
	case "docker":
		return NewDocker(cfg.Image), nil
	case "ssh":
		return NewSSH(cfg.Host), nil
	default:
		return nil, errors.Newf(errors.ErrUnknownEnvType, "unknown environment type %q for %s", cfg.Type, cfg.Name)
	}
}
