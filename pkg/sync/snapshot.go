package sync

// BinarySentinel is recorded in a Snapshot for content that cannot be
// represented as text (invalid UTF-8 or unreadable files).
const BinarySentinel = "<binary>"

// Snapshot is a path -> content capture of a file tree at one moment.
// Keys are slash-separated paths relative to the collection root.
type Snapshot map[string]string

// Paths returns the snapshot's keys in unspecified order.
func (s Snapshot) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	return paths
}
