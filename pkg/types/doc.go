// Package types defines the node record schema shared by producers and
// consumers of accessibility trees: identifiers, roles, the per-node record,
// complete tree updates, typed errors and size limits.
//
// Design goals:
//   - Small, copyable handles (NodeID) instead of pointer graphs.
//   - Records are immutable once handed to a tree.
//   - Typed errors with stable categories (format/corrupt/not-found/...).
//
// The tree model itself lives in package tree.
package types
