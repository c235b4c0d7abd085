// Package types defines the shared interfaces used across ksync packages.
//
// Keeping the FS interface here (rather than in pkg/filesystem) avoids
// import cycles between the staging engine, the adapters, and the
// filesystem implementations.
package types
