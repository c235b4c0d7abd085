package diff

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/sync"
	"github.com/arthur-debert/ksync/pkg/testutil"
)

func testConfig(localDir, targetDir string) *config.Config {
	return &config.Config{
		Version: config.ConfigVersion,
		Targets: []config.TargetConfig{
			{
				Name:      "claude",
				LocalDir:  localDir,
				SyncPaths: []string{"CLAUDE.md", "agents"},
			},
		},
		Environments: map[string]config.EnvironmentConfig{
			"here": {
				Type: "local",
				Targets: map[string]config.EnvTargetConfig{
					"claude": {TargetDir: targetDir},
				},
			},
		},
	}
}

func TestDiff_InSyncEnvironmentYieldsNoChanges(t *testing.T) {
	source := t.TempDir()
	deployed := t.TempDir()
	testutil.CreateFile(t, source, "CLAUDE.md", "# My Config\n")
	testutil.CreateFile(t, deployed, "CLAUDE.md", "# My Config\n")

	result, err := Diff(Options{Config: testConfig(source, deployed), TargetName: "claude"})
	require.NoError(t, err)
	require.Len(t, result.Environments, 1)
	require.NoError(t, result.Environments[0].Err)
	assert.Empty(t, result.Environments[0].Changes)
}

func TestDiff_ReportsAllChangeKinds(t *testing.T) {
	source := t.TempDir()
	deployed := t.TempDir()
	testutil.CreateFile(t, source, "CLAUDE.md", "new content\n")
	testutil.CreateFile(t, source, "agents/fresh.md", "fresh\n")
	testutil.CreateFile(t, deployed, "CLAUDE.md", "old content\n")
	testutil.CreateFile(t, deployed, "agents/stale.md", "stale\n")

	result, err := Diff(Options{Config: testConfig(source, deployed), TargetName: "claude"})
	require.NoError(t, err)

	changes := result.Environments[0].Changes
	require.Len(t, changes, 3)

	assert.Equal(t, "CLAUDE.md", changes[0].Path)
	assert.Equal(t, sync.ChangeModified, changes[0].Type)
	assert.Contains(t, changes[0].Diff, "-old content")
	assert.Contains(t, changes[0].Diff, "+new content")

	assert.Equal(t, "agents/fresh.md", changes[1].Path)
	assert.Equal(t, sync.ChangeAdded, changes[1].Type)

	assert.Equal(t, "agents/stale.md", changes[2].Path)
	assert.Equal(t, sync.ChangeRemoved, changes[2].Type)
}

func TestDiff_UnknownTarget(t *testing.T) {
	_, err := Diff(Options{Config: testConfig(t.TempDir(), t.TempDir()), TargetName: "cursor"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestDiff_StagingAreaIsRemoved(t *testing.T) {
	tmpRoot := t.TempDir()
	t.Setenv("TMPDIR", tmpRoot)

	source := t.TempDir()
	deployed := t.TempDir()
	testutil.CreateFile(t, source, "CLAUDE.md", "# My Config\n")

	_, err := Diff(Options{Config: testConfig(source, deployed), TargetName: "claude"})
	require.NoError(t, err)

	leftovers, err := filepath.Glob(filepath.Join(tmpRoot, "ksync-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
