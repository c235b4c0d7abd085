// Package git wraps the git operations ksync needs: status scoped to the
// configured sync paths, commit-and-push, and pull. Commands run in the
// target's local repo directory with optional extra environment (proxy
// settings and the like).
package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// Status reports local repo state scoped to the sync paths.
type Status struct {
	// Modified holds `git status --porcelain` lines for the sync paths,
	// including untracked files.
	Modified []string
	// Ahead and Behind count commits relative to the upstream branch; both
	// are zero when no upstream is configured.
	Ahead  int
	Behind int
}

// PushResult reports what a Push did.
type PushResult struct {
	// CommitHash is the short hash of the created commit, "(dry-run)" for
	// dry runs, or empty when there was nothing to commit.
	CommitHash  string
	FilesStaged []string
}

// Client runs git against one repository.
type Client struct {
	repoDir string
	gitEnv  map[string]string
	run     func(args ...string) (string, string, int)
}

// New creates a git client for repoDir. gitEnv entries are added to the
// process environment of every invocation.
func New(repoDir string, gitEnv map[string]string) *Client {
	c := &Client{repoDir: repoDir, gitEnv: gitEnv}
	c.run = c.systemGit
	return c
}

func (c *Client) systemGit(args ...string) (string, string, int) {
	logging.LogCommand("git", args)

	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoDir
	cmd.Env = os.Environ()
	for k, v := range c.gitEnv {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		exitCode = 1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// StatusForPaths returns modification and ahead/behind state scoped to
// syncPaths.
func (c *Client) StatusForPaths(syncPaths []string) (Status, error) {
	args := append([]string{"status", "--porcelain", "--"}, syncPaths...)
	stdout, stderr, exitCode := c.run(args...)
	if exitCode != 0 {
		return Status{}, errors.Newf(errors.ErrGitCommand, "git status failed: %s", strings.TrimSpace(stderr))
	}

	var status Status
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if line != "" {
			status.Modified = append(status.Modified, strings.TrimSpace(line))
		}
	}

	// Ahead/behind is best-effort: a missing upstream is not an error.
	stdout, _, exitCode = c.run("rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if exitCode == 0 {
		parts := strings.Fields(strings.TrimSpace(stdout))
		if len(parts) == 2 {
			status.Ahead, _ = strconv.Atoi(parts[0])
			status.Behind, _ = strconv.Atoi(parts[1])
		}
	}

	return status, nil
}

// Push stages syncPaths, commits with message, and pushes. With dryRun the
// staged files are reported and then unstaged without committing.
func (c *Client) Push(syncPaths []string, message string, dryRun bool) (PushResult, error) {
	args := append([]string{"add", "--"}, syncPaths...)
	if _, stderr, exitCode := c.run(args...); exitCode != 0 {
		return PushResult{}, errors.Newf(errors.ErrGitPush, "git add failed: %s", strings.TrimSpace(stderr))
	}

	stdout, _, _ := c.run("diff", "--cached", "--name-only")
	var staged []string
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if line != "" {
			staged = append(staged, line)
		}
	}

	if len(staged) == 0 {
		return PushResult{}, nil
	}

	if dryRun {
		resetArgs := append([]string{"reset", "HEAD", "--"}, syncPaths...)
		c.run(resetArgs...)
		return PushResult{CommitHash: "(dry-run)", FilesStaged: staged}, nil
	}

	if _, stderr, exitCode := c.run("commit", "-m", message); exitCode != 0 {
		return PushResult{}, errors.Newf(errors.ErrGitPush, "git commit failed: %s", strings.TrimSpace(stderr))
	}

	stdout, _, _ = c.run("rev-parse", "--short", "HEAD")
	commitHash := strings.TrimSpace(stdout)

	if _, stderr, exitCode := c.run("push"); exitCode != 0 {
		return PushResult{}, errors.Newf(errors.ErrGitPush, "git push failed: %s", strings.TrimSpace(stderr))
	}

	return PushResult{CommitHash: commitHash, FilesStaged: staged}, nil
}

// Pull fetches and merges from the upstream. It returns git's output
// message, or "Already up to date." when there was nothing to report.
func (c *Client) Pull(dryRun bool) (string, error) {
	if dryRun {
		_, stderr, _ := c.run("fetch", "--dry-run")
		if msg := strings.TrimSpace(stderr); msg != "" {
			return msg, nil
		}
		return "Already up to date.", nil
	}

	stdout, stderr, exitCode := c.run("pull")
	if exitCode != 0 {
		return "", errors.Newf(errors.ErrGitPull, "git pull failed: %s", strings.TrimSpace(stderr))
	}
	if msg := strings.TrimSpace(stdout); msg != "" {
		return msg, nil
	}
	return "Already up to date.", nil
}
