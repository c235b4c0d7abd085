package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Claude(t *testing.T) {
	p, ok := Get("claude")

	require.True(t, ok)
	assert.Equal(t, "~/.claude", p.LocalDir)
	assert.Contains(t, p.SyncPaths, "CLAUDE.md")
	assert.Contains(t, p.SyncPaths, "settings.json")
	assert.Contains(t, p.SyncPaths, "agents")
}

func TestGet_Unknown(t *testing.T) {
	_, ok := Get("emacs")
	assert.False(t, ok)
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.Contains(t, names, "claude")
	assert.IsIncreasing(t, names)
}
