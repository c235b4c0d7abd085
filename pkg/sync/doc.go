// Package sync implements the staging-and-diffing engine at the core of
// ksync: materializing a symlink-normalized copy of selected source paths
// into a scratch directory (Stage), capturing a tree as a path->content
// snapshot (Collect, CollectRemote), and computing a deterministic change
// set between two snapshots (Diff).
//
// All operations are synchronous. The staging directory returned by Stage
// is exclusively owned by the caller and must be removed on every exit
// path; nothing in this package retains a reference to it.
package sync
