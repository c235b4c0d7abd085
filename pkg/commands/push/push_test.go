package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/git"
)

type fakeGit struct {
	result  git.PushResult
	err     error
	paths   []string
	message string
	dryRun  bool
}

func (f *fakeGit) Push(syncPaths []string, message string, dryRun bool) (git.PushResult, error) {
	f.paths = syncPaths
	f.message = message
	f.dryRun = dryRun
	return f.result, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Targets: []config.TargetConfig{
			{Name: "claude", LocalDir: "/tmp/claude", SyncPaths: []string{"CLAUDE.md"}},
		},
		Environments: map[string]config.EnvironmentConfig{},
	}
}

func TestPush_UsesTargetSyncPaths(t *testing.T) {
	fake := &fakeGit{result: git.PushResult{CommitHash: "abc1234", FilesStaged: []string{"CLAUDE.md"}}}

	result, err := Push(Options{
		Config:     testConfig(),
		TargetName: "claude",
		Message:    "update config",
		Git:        fake,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc1234", result.CommitHash)
	assert.Equal(t, []string{"CLAUDE.md"}, fake.paths)
	assert.Equal(t, "update config", fake.message)
	assert.False(t, fake.dryRun)
}

func TestPush_DefaultMessage(t *testing.T) {
	fake := &fakeGit{}

	_, err := Push(Options{Config: testConfig(), TargetName: "claude", Git: fake})
	require.NoError(t, err)
	assert.Equal(t, "Sync claude config", fake.message)
}

func TestPush_DryRunPassedThrough(t *testing.T) {
	fake := &fakeGit{}

	_, err := Push(Options{Config: testConfig(), TargetName: "claude", DryRun: true, Git: fake})
	require.NoError(t, err)
	assert.True(t, fake.dryRun)
}

func TestPush_UnknownTarget(t *testing.T) {
	_, err := Push(Options{Config: testConfig(), TargetName: "cursor", Git: &fakeGit{}})
	assert.Error(t, err)
}
