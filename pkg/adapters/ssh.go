package adapters

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// connectTimeoutSecs bounds the availability probe so a dead host cannot
// hang a status check.
const connectTimeoutSecs = 5

// SSHEnvironment deploys via ssh and rsync. Every Run opens one ssh
// invocation; remote path arguments are shell-quoted because the remote
// side re-parses the command line.
type SSHEnvironment struct {
	host string
	run  runner
}

// NewSSH creates an ssh adapter for the given host (anything the user's ssh
// config resolves: alias, user@host, etc.).
func NewSSH(host string) *SSHEnvironment {
	return &SSHEnvironment{host: host, run: systemRunner}
}

func (s *SSHEnvironment) IsAvailable() bool {
	result := s.run("ssh", "-o", fmt.Sprintf("ConnectTimeout=%d", connectTimeoutSecs), s.host, "true")
	return result.ExitCode == 0
}

func (s *SSHEnvironment) Run(argv []string) (RunResult, error) {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	args := append([]string{s.host}, quoted...)
	return s.run("ssh", args...), nil
}

func (s *SSHEnvironment) ReadFile(path string) (string, bool) {
	result, err := s.Run([]string{"cat", path})
	if err != nil || result.ExitCode != 0 {
		return "", false
	}
	return result.Stdout, true
}

func (s *SSHEnvironment) ListFiles(path string) []string {
	result, err := s.Run([]string{"find", path, "-type", "f"})
	if err != nil || result.ExitCode != 0 {
		return nil
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if !strings.HasPrefix(line, path) {
			continue
		}
		rel := strings.TrimLeft(strings.TrimPrefix(line, path), "/")
		if rel != "" {
			files = append(files, rel)
		}
	}
	sort.Strings(files)
	return files
}

// Deploy transfers sync paths with rsync. Directory sync paths use mirror
// semantics (--delete: remote files absent from staging are removed);
// single files are copied without cross-checking deletions. The asymmetry
// is deliberate and matches the documented deploy contract.
func (s *SSHEnvironment) Deploy(stagingDir, targetDir string, syncPaths []string) ([]string, error) {
	logger := logging.GetLogger("adapters.ssh")

	if result, err := s.Run([]string{"mkdir", "-p", targetDir}); err != nil {
		return nil, err
	} else if result.ExitCode != 0 {
		return nil, errors.Newf(errors.ErrUnreachable, "ssh %s: %s", s.host, strings.TrimSpace(result.Stderr))
	}

	var deployed []string
	for _, sp := range syncPaths {
		src := filepath.Join(stagingDir, sp)
		info, err := os.Stat(src)
		if err != nil {
			continue
		}

		remotePath := path.Join(targetDir, sp)
		var result RunResult
		if info.IsDir() {
			if r, err := s.Run([]string{"mkdir", "-p", remotePath}); err != nil {
				return deployed, err
			} else if r.ExitCode != 0 {
				return deployed, errors.Newf(errors.ErrTransferFailure, "creating %s on %s: %s", remotePath, s.host, r.Stderr)
			}
			// The remote side of an rsync destination is re-parsed by the
			// remote shell, so it gets the same quoting as Run arguments.
			result = s.run("rsync", "-avz", "--delete", "-e", "ssh",
				src+"/", fmt.Sprintf("%s:%s/", s.host, shellQuote(remotePath)))
		} else {
			parent := path.Dir(remotePath)
			if r, err := s.Run([]string{"mkdir", "-p", parent}); err != nil {
				return deployed, err
			} else if r.ExitCode != 0 {
				return deployed, errors.Newf(errors.ErrTransferFailure, "creating %s on %s: %s", parent, s.host, r.Stderr)
			}
			result = s.run("rsync", "-avz", "-e", "ssh",
				src, fmt.Sprintf("%s:%s", s.host, shellQuote(remotePath)))
		}

		if result.ExitCode != 0 {
			return deployed, errors.Newf(errors.ErrTransferFailure, "rsync %s to %s failed: %s", sp, s.host, strings.TrimSpace(result.Stderr)).
				WithDetail("path", sp)
		}

		logger.Debug().Str("path", sp).Str("host", s.host).Msg("Deployed sync path")
		deployed = append(deployed, sp)
	}

	return deployed, nil
}

func (s *SSHEnvironment) Clean(targetDir string, syncPaths []string) error {
	for _, sp := range syncPaths {
		if _, err := s.Run([]string{"rm", "-rf", path.Join(targetDir, sp)}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SSHEnvironment) DisplayName() string {
	return fmt.Sprintf("ssh %s", s.host)
}
