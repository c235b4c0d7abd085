// Package profiles holds the built-in platform profiles for common
// AI coding tools: the local config directory each tool uses and the
// paths under it worth syncing.
package profiles

import "sort"

// Profile describes one supported tool's config layout.
type Profile struct {
	Name      string
	LocalDir  string
	SyncPaths []string
}

var builtin = map[string]Profile{
	"claude": {
		Name:     "claude",
		LocalDir: "~/.claude",
		SyncPaths: []string{
			"CLAUDE.md",
			"settings.json",
			"agents",
			"commands",
			"skills",
			"scripts",
		},
	},
	// Future profiles:
	// "cursor":   { LocalDir: "~/.cursor", ... },
	// "windsurf": { LocalDir: "~/.windsurf", ... },
	// "aider":    { LocalDir: "~/.aider", ... },
}

// Get returns a built-in profile by name. The second return value reports
// whether the profile exists.
func Get(name string) (Profile, bool) {
	p, ok := builtin[name]
	return p, ok
}

// Names returns the available profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
