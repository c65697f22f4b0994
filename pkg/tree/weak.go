package tree

import (
	"weak"

	"github.com/joshuapare/axkit/pkg/types"
)

// WeakNode is a durable, non-owning reference to a node id within a Tree.
// It can be stored across asynchronous boundaries and later resolved
// against whatever version the Tree holds at that moment.
//
// The zero WeakNode never resolves.
type WeakNode struct {
	tree weak.Pointer[Tree]
	id   types.NodeID
}

func newWeakNode(t *Tree, id types.NodeID) WeakNode {
	return WeakNode{tree: weak.Make(t), id: id}
}

// ID returns the node id this reference names.
func (w WeakNode) ID() types.NodeID { return w.id }

// Alive reports whether the Tree still exists. The node itself may be gone
// from the current version even when Alive is true.
func (w WeakNode) Alive() bool { return w.tree.Value() != nil }

// With resolves the reference and calls f with the node. It reports whether
// f was called.
func (w WeakNode) With(f func(Node)) bool {
	_, ok := Map(w, func(n Node) struct{} {
		f(n)
		return struct{}{}
	})
	return ok
}

// Map resolves w against the current version of its Tree and returns f's
// result. ok is false when the Tree no longer exists or its current version
// has no node with w's id; both mean the reference is stale.
//
// Two calls may observe different versions if an update is published in
// between.
func Map[T any](w WeakNode, f func(Node) T) (result T, ok bool) {
	t := w.tree.Value()
	if t == nil {
		return result, false
	}
	n, found := t.Read().NodeByID(w.id)
	if !found {
		return result, false
	}
	return f(n), true
}
