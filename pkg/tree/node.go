package tree

import (
	"iter"

	"github.com/joshuapare/axkit/pkg/types"
)

// Node is a borrowed handle to one node of one version. It is a small value;
// copy it freely. The zero Node is not valid; every method that returns a
// Node alongside a bool returns the zero Node when the bool is false.
type Node struct {
	reader *Reader
	state  *NodeState
}

// Reader returns the Reader this node was resolved through.
func (n Node) Reader() *Reader { return n.reader }

// Data returns the node's record. The record is shared with the tree and
// must not be modified.
func (n Node) Data() *types.NodeData { return &n.state.data }

// ID returns the node id.
func (n Node) ID() types.NodeID { return n.state.data.ID }

// Role returns the node role.
func (n Node) Role() types.Role { return n.state.data.Role }

// Name returns the node's accessible name.
func (n Node) Name() string { return n.state.data.Name }

// IsInvisible reports the record's invisible flag.
func (n Node) IsInvisible() bool { return n.state.data.Invisible }

// IsFocused reports whether this node holds focus in its version.
func (n Node) IsFocused() bool {
	return n.reader.state.focus == n.state.data.ID
}

// IsIgnored reports whether the node is excluded from the accessible tree:
// either its ignored flag is set or its role is presentation.
func (n Node) IsIgnored() bool {
	return n.state.data.Ignored || n.state.data.Role == types.RolePresentation
}

// IsInvisibleOrIgnored reports whether the node should be hidden from
// assistive technology. The focused node is never hidden.
func (n Node) IsInvisibleOrIgnored() bool {
	return (n.IsInvisible() || n.IsIgnored()) && !n.IsFocused()
}

// Parent returns the parent node; false at the root.
func (n Node) Parent() (Node, bool) {
	if !n.state.hasParent {
		return Node{}, false
	}
	return n.reader.mustNode(n.state.parent.Parent, n.state.data.ID), true
}

// IndexInParent returns the node's position among its parent's children;
// false at the root.
func (n Node) IndexInParent() (int, bool) {
	if !n.state.hasParent {
		return 0, false
	}
	return n.state.parent.Index, true
}

// UnignoredParent returns the nearest strict ancestor that is not ignored,
// or false if every ancestor up to the root is ignored.
func (n Node) UnignoredParent() (Node, bool) {
	p, ok := n.Parent()
	for ok && p.IsIgnored() {
		p, ok = p.Parent()
	}
	return p, ok
}

// Ancestors yields the parent chain, nearest first.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		p, ok := n.Parent()
		for ok {
			if !yield(p) {
				return
			}
			p, ok = p.Parent()
		}
	}
}

// UnignoredAncestors yields the accessible parent chain, nearest first.
func (n Node) UnignoredAncestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		p, ok := n.UnignoredParent()
		for ok {
			if !yield(p) {
				return
			}
			p, ok = p.UnignoredParent()
		}
	}
}

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int { return len(n.state.data.Children) }

// Children yields the direct children in order.
func (n Node) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, id := range n.state.data.Children {
			if !yield(n.reader.mustNode(id, n.state.data.ID)) {
				return
			}
		}
	}
}

// UnignoredChildren yields the children as assistive technology sees them:
// an ignored child is replaced in place by its own unignored children.
func (n Node) UnignoredChildren() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		type frame struct {
			owner types.NodeID
			ids   []types.NodeID
		}
		stack := []frame{{owner: n.state.data.ID, ids: n.state.data.Children}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.ids) == 0 {
				stack = stack[:len(stack)-1]
				continue
			}
			id := top.ids[0]
			top.ids = top.ids[1:]

			child := n.reader.mustNode(id, top.owner)
			if child.IsIgnored() {
				stack = append(stack, frame{owner: id, ids: child.state.data.Children})
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// Downgrade returns a WeakNode for this node's id that does not keep the
// tree alive.
func (n Node) Downgrade() WeakNode {
	return newWeakNode(n.reader.tree, n.state.data.ID)
}

// walk is the iterative pre-order traversal behind Reader.Walk.
func (n Node) walk(fn func(Node, int) bool) {
	stack := make([]walkEntry, 0, 64)
	stack = append(stack, walkEntry{id: n.state.data.ID})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cur := n.reader.mustNode(e.id, types.NoNode)
		if !fn(cur, e.depth) {
			return
		}
		children := cur.state.data.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkEntry{id: children[i], depth: e.depth + 1})
		}
	}
}
