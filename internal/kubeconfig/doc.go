// Package kubeconfig models the kubeconfig document and implements the
// operations khelp performs on it.
//
// The package is split into:
//   - types.go: the document model. Unknown keys survive a load/save cycle.
//   - store.go: locating, reading, parsing and writing the main file, with an
//     optional .bak copy taken before each write.
//   - merge.go and import.go: folding an external kubeconfig into the main one
//     under a rename, overwrite or skip policy.
//   - contexts.go: switching, deleting and renaming contexts.
//   - prune.go: finding and removing clusters and users no context uses.
//   - export.go: extracting a standalone document for a set of contexts.
//   - edit.go: the round trip through an editor buffer for one context.
//
// Functions here operate on an in-memory *Config and never prompt; callers in
// cmd decide what to ask the user and when to persist.
package kubeconfig
