// Package config defines the ksync configuration model and its TOML
// persistence. The core engine (staging, collection, diffing) never reads
// configuration directly; orchestrating commands load a Config here and
// pass explicit roots and flags down.
package config
