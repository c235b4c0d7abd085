package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/testutil"
)

// scriptedRunner records invocations and replies from a script keyed by the
// joined command line, falling back to a default result.
type scriptedRunner struct {
	calls          [][]string
	replies        map[string]RunResult
	fallbackResult RunResult
}

func (r *scriptedRunner) run(name string, args ...string) RunResult {
	call := append([]string{name}, args...)
	r.calls = append(r.calls, call)
	if reply, ok := r.replies[strings.Join(call, " ")]; ok {
		return reply
	}
	return r.fallbackResult
}

func (r *scriptedRunner) calledWith(prefix string) bool {
	for _, call := range r.calls {
		if strings.HasPrefix(strings.Join(call, " "), prefix) {
			return true
		}
	}
	return false
}

func newDockerWithRunner(image string, r *scriptedRunner) *DockerEnvironment {
	env := NewDocker(image)
	env.run = r.run
	return env
}

func TestDocker_ResolvesAndCachesContainerID(t *testing.T) {
	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=ubuntu:latest --format {{.ID}}": {Stdout: "abc123def456789\n"},
	}}
	env := newDockerWithRunner("ubuntu:latest", r)

	assert.True(t, env.IsAvailable())
	assert.True(t, env.IsAvailable())

	// The ps listing ran only once; later calls use the cache.
	count := 0
	for _, call := range r.calls {
		if call[1] == "ps" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "docker container abc123def456", env.DisplayName())
}

func TestDocker_FirstContainerWinsWhenMultipleMatch(t *testing.T) {
	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=ubuntu:latest --format {{.ID}}": {Stdout: "first\nsecond\n"},
	}}
	env := newDockerWithRunner("ubuntu:latest", r)

	result, err := env.Run([]string{"true"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, r.calledWith("docker exec first true"))
}

func TestDocker_UnreachableWhenNoContainer(t *testing.T) {
	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=ubuntu:latest --format {{.ID}}": {Stdout: "\n"},
	}}
	env := newDockerWithRunner("ubuntu:latest", r)

	assert.False(t, env.IsAvailable())
	assert.Equal(t, "docker container ?", env.DisplayName())

	_, err := env.Run([]string{"true"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnreachable))

	_, err = env.Deploy(t.TempDir(), "/target", []string{"CLAUDE.md"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnreachable))
}

func TestDocker_ReadFile(t *testing.T) {
	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=img --format {{.ID}}": {Stdout: "cid\n"},
		"docker exec cid cat /etc/CLAUDE.md":               {Stdout: "# Remote\n"},
		"docker exec cid cat /etc/missing.md":              {ExitCode: 1, Stderr: "No such file"},
	}}
	env := newDockerWithRunner("img", r)

	content, ok := env.ReadFile("/etc/CLAUDE.md")
	require.True(t, ok)
	assert.Equal(t, "# Remote\n", content)

	_, ok = env.ReadFile("/etc/missing.md")
	assert.False(t, ok)
}

func TestDocker_ListFiles(t *testing.T) {
	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=img --format {{.ID}}": {Stdout: "cid\n"},
		"docker exec cid find /home/dev/.claude -type f": {
			Stdout: "/home/dev/.claude/b.md\n/home/dev/.claude/agents/a.md\n",
		},
	}}
	env := newDockerWithRunner("img", r)

	assert.Equal(t, []string{"agents/a.md", "b.md"}, env.ListFiles("/home/dev/.claude"))
}

func TestDocker_DeploySkipsMissingAndCopiesRest(t *testing.T) {
	staging := t.TempDir()
	testutil.CreateFile(t, staging, "CLAUDE.md", "# My Config\n")

	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=img --format {{.ID}}": {Stdout: "cid\n"},
	}}
	env := newDockerWithRunner("img", r)

	deployed, err := env.Deploy(staging, "/home/dev/.claude", []string{"CLAUDE.md", "missing.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CLAUDE.md"}, deployed)
	assert.True(t, r.calledWith("docker exec cid mkdir -p /home/dev/.claude"))
	assert.True(t, r.calledWith("docker cp "+staging+"/CLAUDE.md cid:/home/dev/.claude/CLAUDE.md"))
}

func TestDocker_DeployFailureAbortsRemainingPaths(t *testing.T) {
	staging := t.TempDir()
	testutil.CreateFile(t, staging, "a.md", "a\n")
	testutil.CreateFile(t, staging, "b.md", "b\n")

	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=img --format {{.ID}}": {Stdout: "cid\n"},
		"docker cp " + staging + "/a.md cid:/target/a.md":  {ExitCode: 1, Stderr: "copy failed"},
	}}
	env := newDockerWithRunner("img", r)

	deployed, err := env.Deploy(staging, "/target", []string{"a.md", "b.md"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransferFailure))
	assert.Empty(t, deployed)
	assert.False(t, r.calledWith("docker cp "+staging+"/b.md"))
}

func TestDocker_Clean(t *testing.T) {
	r := &scriptedRunner{replies: map[string]RunResult{
		"docker ps --filter ancestor=img --format {{.ID}}": {Stdout: "cid\n"},
	}}
	env := newDockerWithRunner("img", r)

	require.NoError(t, env.Clean("/target", []string{"CLAUDE.md", "agents"}))
	assert.True(t, r.calledWith("docker exec cid rm -rf /target/CLAUDE.md"))
	assert.True(t, r.calledWith("docker exec cid rm -rf /target/agents"))
}
