package sync

import (
	"path"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/arthur-debert/ksync/pkg/types"
)

// RemoteReader is the subset of an environment adapter the remote collector
// needs. Both lookups treat missing or unreadable paths as absent rather
// than failing.
type RemoteReader interface {
	ReadFile(path string) (string, bool)
	ListFiles(path string) []string
}

// Collect reads every regular file under syncPaths into a Snapshot keyed by
// path relative to root. Missing sync paths are skipped; unreadable or
// non-text content is recorded as the binary sentinel.
func Collect(fsys types.FS, root string, syncPaths []string) Snapshot {
	snap := Snapshot{}

	for _, sp := range syncPaths {
		src := filepath.Join(root, sp)

		info, err := fsys.Stat(src)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			snap[sp] = readText(fsys, src)
			continue
		}

		collectDir(fsys, root, src, snap)
	}

	return snap
}

// collectDir walks dir in sorted order and records every regular file,
// keyed relative to root.
func collectDir(fsys types.FS, root, dir string, snap Snapshot) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			collectDir(fsys, root, full, snap)
			continue
		}
		rel, err := filepath.Rel(root, full)
		if err != nil {
			continue
		}
		snap[filepath.ToSlash(rel)] = readText(fsys, full)
	}
}

// CollectRemote builds a Snapshot of targetDir in a remote environment by
// combining a recursive listing with per-file reads. Each sync path is also
// probed as a single file, covering sync paths that name files rather than
// directories.
func CollectRemote(env RemoteReader, targetDir string, syncPaths []string) Snapshot {
	snap := Snapshot{}

	for _, sp := range syncPaths {
		base := path.Join(targetDir, sp)

		for _, rel := range env.ListFiles(base) {
			if content, ok := env.ReadFile(path.Join(base, rel)); ok {
				snap[path.Join(sp, rel)] = content
			}
		}

		if _, seen := snap[sp]; !seen {
			if content, ok := env.ReadFile(base); ok {
				snap[sp] = content
			}
		}
	}

	return snap
}

func readText(fsys types.FS, name string) string {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return BinarySentinel
	}
	if !utf8.Valid(data) {
		return BinarySentinel
	}
	return string(data)
}
