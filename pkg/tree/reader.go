package tree

import (
	"fmt"

	"github.com/joshuapare/axkit/pkg/types"
)

// Reader is a read view bound to one State. All Nodes it hands out belong
// to that State.
type Reader struct {
	tree  *Tree
	state *State
}

// NodeByID returns the node with the given id, or false if this version
// has no such node.
func (r *Reader) NodeByID(id types.NodeID) (Node, bool) {
	st, ok := r.state.nodes[id]
	if !ok {
		return Node{}, false
	}
	return Node{reader: r, state: st}, true
}

// mustNode resolves an id the version itself refers to (a parent or child
// link). A miss means the version breaks its own invariants.
func (r *Reader) mustNode(id types.NodeID, from types.NodeID) Node {
	n, ok := r.NodeByID(id)
	if !ok {
		panic(&types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  fmt.Sprintf("node %d refers to missing node %d (generation %d)", from, id, r.state.generation),
			Err:  types.ErrMissingNode,
		})
	}
	return n
}

// Root returns the root node. It panics on a Reader from a Tree that has
// not published a version yet.
func (r *Reader) Root() Node {
	return r.mustNode(r.state.root, types.NoNode)
}

// Focus returns the focused node, if any.
func (r *Reader) Focus() (Node, bool) {
	if r.state.focus == types.NoNode {
		return Node{}, false
	}
	return r.mustNode(r.state.focus, types.NoNode), true
}

// State returns the version this Reader is bound to.
func (r *Reader) State() *State { return r.state }

// Generation returns the generation of the version this Reader is bound to.
func (r *Reader) Generation() uint64 { return r.state.generation }

// Len returns the number of nodes in this version.
func (r *Reader) Len() int { return len(r.state.nodes) }

// Walk visits every node in pre-order, starting at the root, together with
// its depth (root = 0). Walking stops when fn returns false.
func (r *Reader) Walk(fn func(n Node, depth int) bool) {
	if r.state.root == types.NoNode {
		return
	}
	r.Root().walk(fn)
}

// FindByName returns the first node in pre-order whose Name equals name
// under Unicode case folding.
func (r *Reader) FindByName(name string) (Node, bool) {
	want := types.FoldName(name)
	var found Node
	ok := false
	r.Walk(func(n Node, _ int) bool {
		if n.state.data.Name != "" && types.FoldName(n.state.data.Name) == want {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}
