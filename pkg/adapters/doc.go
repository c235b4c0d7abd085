// Package adapters implements the environment abstraction ksync deploys
// through: the local filesystem, a running docker container (exec/cp), or
// an ssh host (ssh/rsync). Adapters are constructed through New, keyed by
// the environment config's type tag.
package adapters
