package sync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ksync/pkg/filesystem"
	"github.com/arthur-debert/ksync/pkg/sync"
	"github.com/arthur-debert/ksync/pkg/testutil"
)

func TestCollect_FilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "CLAUDE.md", "# My Config\n")
	testutil.CreateFile(t, root, "agents/reviewer.md", "review\n")
	testutil.CreateFile(t, root, "agents/nested/helper.md", "help\n")

	snap := sync.Collect(filesystem.NewOS(), root, []string{"CLAUDE.md", "agents"})

	assert.Equal(t, sync.Snapshot{
		"CLAUDE.md":               "# My Config\n",
		"agents/reviewer.md":      "review\n",
		"agents/nested/helper.md": "help\n",
	}, snap)
}

func TestCollect_SkipsMissingSyncPaths(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "CLAUDE.md", "# My Config\n")

	snap := sync.Collect(filesystem.NewOS(), root, []string{"CLAUDE.md", "nonexistent"})

	assert.Len(t, snap, 1)
	assert.Contains(t, snap, "CLAUDE.md")
}

func TestCollect_BinaryContentRecordedAsSentinel(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0xff, 0xfe, 0x00, 0x01}, 0644))

	snap := sync.Collect(filesystem.NewOS(), root, []string{"blob.bin"})

	assert.Equal(t, sync.BinarySentinel, snap["blob.bin"])
}

func TestCollect_WorksOnMemoryFS(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/root/agents", 0755))
	require.NoError(t, fsys.WriteFile("/root/CLAUDE.md", []byte("# My Config\n"), 0644))
	require.NoError(t, fsys.WriteFile("/root/agents/reviewer.md", []byte("review\n"), 0644))

	snap := sync.Collect(fsys, "/root", []string{"CLAUDE.md", "agents"})

	assert.Equal(t, "# My Config\n", snap["CLAUDE.md"])
	assert.Equal(t, "review\n", snap["agents/reviewer.md"])
}

// fakeRemote implements sync.RemoteReader over an in-memory file map keyed
// by absolute remote path.
type fakeRemote struct {
	files map[string]string
	lists map[string][]string
}

func (f *fakeRemote) ReadFile(path string) (string, bool) {
	content, ok := f.files[path]
	return content, ok
}

func (f *fakeRemote) ListFiles(path string) []string {
	return f.lists[path]
}

func TestCollectRemote_CombinesListingAndReads(t *testing.T) {
	remote := &fakeRemote{
		files: map[string]string{
			"/home/dev/.claude/CLAUDE.md":          "# Remote Config\n",
			"/home/dev/.claude/agents/reviewer.md": "remote review\n",
		},
		lists: map[string][]string{
			"/home/dev/.claude/agents": {"reviewer.md"},
		},
	}

	snap := sync.CollectRemote(remote, "/home/dev/.claude", []string{"CLAUDE.md", "agents"})

	assert.Equal(t, sync.Snapshot{
		"CLAUDE.md":          "# Remote Config\n",
		"agents/reviewer.md": "remote review\n",
	}, snap)
}

func TestCollectRemote_MissingPathsYieldEmptySnapshot(t *testing.T) {
	remote := &fakeRemote{files: map[string]string{}, lists: map[string][]string{}}

	snap := sync.CollectRemote(remote, "/home/dev/.claude", []string{"CLAUDE.md", "agents"})

	assert.Empty(t, snap)
}
