// Package tree provides the read-side model of an accessibility tree.
//
// # Overview
//
// A producer (the UI application) describes its semantic structure as a
// complete types.TreeUpdate. The package turns each update into an
// immutable State and publishes it through a Tree with a single atomic
// store. Consumers (platform accessibility adapters) read a version through
// a Reader and navigate it with Node handles:
//
//	t, err := tree.New(update, tree.Options{})
//	if err != nil {
//		return err
//	}
//	r := t.Read()
//	n, ok := r.NodeByID(42)
//	if ok && !n.IsInvisibleOrIgnored() {
//		parent, _ := n.UnignoredParent()
//		_ = parent
//	}
//
// # Core Types
//
// Tree: shared container for the current version
//   - New builds the first version, Update publishes the next
//   - rejected updates leave the current version in place
//
// State / NodeState: one immutable version
//   - arena of node records keyed by NodeID
//   - parent link and index derived from each record's ordered children
//
// Reader: read view over one State
//   - O(1), allocation-free NodeByID
//   - never sees a later version, even after Update
//
// Node: borrowed handle (Reader, NodeState)
//   - role, flags, focus, parent and ignored-skipping navigation
//
// WeakNode: non-owning (Tree, NodeID) reference
//   - does not keep the Tree alive
//   - Map re-resolves against the Tree's current version
//
// # Ignored Nodes
//
// A node is ignored when its Ignored flag is set or its role is
// types.RolePresentation. UnignoredParent and UnignoredChildren skip
// ignored nodes so adapters never expose them. IsInvisibleOrIgnored folds in
// the invisible flag but never hides the node holding focus.
//
// # Concurrency
//
// The package starts no goroutines. Published versions are never written
// again, so Readers and Nodes may be used from any number of goroutines.
// Publishers are serialized; generations increase by one per successful
// Update.
//
// # Contract Violations
//
// Updates are checked when built: zero or duplicate ids, missing root,
// children or focus, nodes with two parents, cycles, detached nodes and
// Limits violations are returned as typed errors from New or Update. A
// published version therefore always satisfies its invariants; should a
// link ever fail to resolve anyway, navigation panics with a
// *types.Error of kind types.ErrKindCorrupt instead of guessing.
package tree
