package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ksync/pkg/sync"
)

func TestDiff_IdenticalSnapshots(t *testing.T) {
	snap := sync.Snapshot{
		"CLAUDE.md":          "# My Config\n",
		"agents/reviewer.md": "review\n",
	}

	assert.Empty(t, sync.Diff(snap, snap))
}

func TestDiff_LocalOnly(t *testing.T) {
	local := sync.Snapshot{"CLAUDE.md": "# My Config\n"}
	remote := sync.Snapshot{}

	changes := sync.Diff(local, remote)

	require.Len(t, changes, 1)
	assert.Equal(t, "CLAUDE.md", changes[0].Path)
	assert.Equal(t, sync.ChangeAdded, changes[0].Type)
	assert.Equal(t, "  + CLAUDE.md (local only)", changes[0].String())
}

func TestDiff_RemoteOnly(t *testing.T) {
	local := sync.Snapshot{}
	remote := sync.Snapshot{"stale.md": "old\n"}

	changes := sync.Diff(local, remote)

	require.Len(t, changes, 1)
	assert.Equal(t, sync.ChangeRemoved, changes[0].Type)
	assert.Equal(t, "  - stale.md (remote only)", changes[0].String())
}

func TestDiff_ModifiedFileYieldsUnifiedDiff(t *testing.T) {
	local := sync.Snapshot{"file.md": "new content\n"}
	remote := sync.Snapshot{"file.md": "old content\n"}

	changes := sync.Diff(local, remote)

	require.Len(t, changes, 1)
	assert.Equal(t, sync.ChangeModified, changes[0].Type)
	assert.Contains(t, changes[0].Diff, "--- remote/file.md")
	assert.Contains(t, changes[0].Diff, "+++ local/file.md")
	assert.Contains(t, changes[0].Diff, "-old content")
	assert.Contains(t, changes[0].Diff, "+new content")
}

func TestDiff_OrderIsLexicographic(t *testing.T) {
	local := sync.Snapshot{
		"zeta.md":  "z\n",
		"alpha.md": "a\n",
		"mid.md":   "m\n",
	}
	remote := sync.Snapshot{
		"beta.md": "b\n",
		"mid.md":  "different\n",
	}

	changes := sync.Diff(local, remote)

	paths := make([]string, len(changes))
	for i, c := range changes {
		paths[i] = c.Path
	}
	assert.Equal(t, []string{"alpha.md", "beta.md", "mid.md", "zeta.md"}, paths)
}

func TestDiff_MixedChangeSet(t *testing.T) {
	local := sync.Snapshot{
		"CLAUDE.md":     "# My Config v2\n",
		"settings.json": "{}\n",
	}
	remote := sync.Snapshot{
		"CLAUDE.md": "# My Config\n",
		"legacy.md": "old notes\n",
	}

	changes := sync.Diff(local, remote)

	require.Len(t, changes, 3)
	assert.Equal(t, sync.ChangeModified, changes[0].Type) // CLAUDE.md
	assert.Equal(t, sync.ChangeRemoved, changes[1].Type)  // legacy.md
	assert.Equal(t, sync.ChangeAdded, changes[2].Type)    // settings.json
}

func TestDiff_EmptyFileIsStillReported(t *testing.T) {
	local := sync.Snapshot{"empty.lock": ""}
	remote := sync.Snapshot{}

	changes := sync.Diff(local, remote)

	require.Len(t, changes, 1)
	assert.Equal(t, sync.ChangeAdded, changes[0].Type)
	assert.Equal(t, "empty.lock", changes[0].Path)
}

func TestSnapshotPaths(t *testing.T) {
	snap := sync.Snapshot{"b.md": "b\n", "a.md": "a\n"}

	paths := snap.Paths()

	assert.ElementsMatch(t, []string{"a.md", "b.md"}, paths)
	assert.Empty(t, sync.Snapshot{}.Paths())
}
