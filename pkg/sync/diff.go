package sync

import (
	"fmt"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// ChangeType classifies one entry of a tree diff.
type ChangeType string

const (
	// ChangeAdded means the path exists only in the local snapshot.
	ChangeAdded ChangeType = "added"
	// ChangeRemoved means the path exists only in the remote snapshot.
	ChangeRemoved ChangeType = "removed"
	// ChangeModified means the path exists on both sides with differing content.
	ChangeModified ChangeType = "modified"
)

// Change is one entry of a tree diff.
type Change struct {
	Path string
	Type ChangeType
	// Diff holds the unified diff text for modified paths; empty otherwise.
	Diff string
}

// String renders the change the way the diff command prints it.
func (c Change) String() string {
	switch c.Type {
	case ChangeAdded:
		return fmt.Sprintf("  + %s (local only)", c.Path)
	case ChangeRemoved:
		return fmt.Sprintf("  - %s (remote only)", c.Path)
	default:
		return c.Diff
	}
}

// Diff compares two snapshots and returns one Change per differing path,
// ordered lexicographically by path regardless of snapshot construction
// order. Identical paths produce no change. Diffing a snapshot against
// itself always yields an empty result.
func Diff(local, remote Snapshot) []Change {
	allPaths := local.Paths()
	seen := make(map[string]struct{}, len(allPaths))
	for _, p := range allPaths {
		seen[p] = struct{}{}
	}
	for p := range remote {
		if _, ok := seen[p]; !ok {
			allPaths = append(allPaths, p)
		}
	}
	sort.Strings(allPaths)

	var changes []Change
	for _, p := range allPaths {
		localContent, inLocal := local[p]
		remoteContent, inRemote := remote[p]

		switch {
		case !inRemote:
			changes = append(changes, Change{Path: p, Type: ChangeAdded})
		case !inLocal:
			changes = append(changes, Change{Path: p, Type: ChangeRemoved})
		case localContent == remoteContent:
			continue
		default:
			text := unifiedDiff(p, remoteContent, localContent)
			if text == "" {
				continue
			}
			changes = append(changes, Change{Path: p, Type: ChangeModified, Diff: text})
		}
	}

	return changes
}

// unifiedDiff renders a line-based diff with the remote side as "from" and
// the local side as "to".
func unifiedDiff(path, remote, local string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(remote),
		B:        difflib.SplitLines(local),
		FromFile: fmt.Sprintf("remote/%s", path),
		ToFile:   fmt.Sprintf("local/%s", path),
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return out
}
