// Package testutil provides shared filesystem helpers for ksync tests.
package testutil
