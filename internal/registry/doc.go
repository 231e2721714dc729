// Package registry holds the pure package-registry model: manifest parsing,
// reconciliation of the manifest against locally installed packages, and the
// action decision table. Nothing in this package performs I/O.
package registry
