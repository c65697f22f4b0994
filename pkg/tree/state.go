package tree

import (
	"fmt"

	"github.com/joshuapare/axkit/pkg/types"
)

// ParentAndIndex links a node to its parent and its position among the
// parent's children.
type ParentAndIndex struct {
	Parent types.NodeID
	Index  int
}

// NodeState wraps one record with its relationship to the rest of the tree.
type NodeState struct {
	data      types.NodeData
	parent    ParentAndIndex
	hasParent bool
}

// ParentAndIndex returns the parent link; ok is false for the root.
func (s *NodeState) ParentAndIndex() (pi ParentAndIndex, ok bool) {
	return s.parent, s.hasParent
}

// State is one immutable, internally consistent version of the tree.
// Nothing reachable from a published State is ever written again.
type State struct {
	nodes      map[types.NodeID]*NodeState
	root       types.NodeID
	focus      types.NodeID
	generation uint64
}

// Root returns the root id.
func (s *State) Root() types.NodeID { return s.root }

// Focus returns the focused id, or types.NoNode.
func (s *State) Focus() types.NodeID { return s.focus }

// Generation returns the publish sequence number of this version, starting at 1.
func (s *State) Generation() uint64 { return s.generation }

// Len returns the number of nodes.
func (s *State) Len() int { return len(s.nodes) }

// walkEntry is one pending node of the iterative build traversal.
type walkEntry struct {
	id    types.NodeID
	depth int
}

// buildState checks an update against the producer contract and the limits,
// and derives the parent links from each record's ordered children.
func buildState(update types.TreeUpdate, limits types.Limits, generation uint64) (*State, error) {
	if len(update.Nodes) > limits.MaxNodes {
		return nil, &types.LimitError{Limit: "MaxNodes", Current: len(update.Nodes), Maximum: limits.MaxNodes}
	}
	if update.Root == types.NoNode {
		return nil, fmt.Errorf("root: %w", types.ErrZeroID)
	}

	// One backing array for all node states; the map points into it.
	// Child ids are copied into a single owned slice so the caller's
	// update can be reused without touching the published version.
	total := 0
	for i := range update.Nodes {
		total += len(update.Nodes[i].Children)
	}
	childIDs := make([]types.NodeID, 0, total)
	arena := make([]NodeState, len(update.Nodes))
	nodes := make(map[types.NodeID]*NodeState, len(update.Nodes))
	for i := range update.Nodes {
		rec := update.Nodes[i]
		if rec.ID == types.NoNode {
			return nil, fmt.Errorf("record %d: %w", i, types.ErrZeroID)
		}
		if _, dup := nodes[rec.ID]; dup {
			return nil, fmt.Errorf("node %d: %w", rec.ID, types.ErrDuplicateNode)
		}
		if len(rec.Children) > 0 {
			start := len(childIDs)
			childIDs = append(childIDs, rec.Children...)
			rec.Children = childIDs[start:len(childIDs):len(childIDs)]
		}
		arena[i].data = rec
		nodes[rec.ID] = &arena[i]
	}

	if _, ok := nodes[update.Root]; !ok {
		return nil, fmt.Errorf("root %d: %w", update.Root, types.ErrMissingNode)
	}
	if update.Focus != types.NoNode {
		if _, ok := nodes[update.Focus]; !ok {
			return nil, fmt.Errorf("focus %d: %w", update.Focus, types.ErrMissingNode)
		}
	}

	for i := range arena {
		st := &arena[i]
		children := st.data.Children
		if len(children) > limits.MaxChildren {
			return nil, &types.LimitError{
				Limit:   "MaxChildren",
				Current: len(children),
				Maximum: limits.MaxChildren,
				Node:    st.data.ID,
			}
		}
		for idx, childID := range children {
			if childID == types.NoNode {
				return nil, fmt.Errorf("child %d of node %d: %w", idx, st.data.ID, types.ErrZeroID)
			}
			child, ok := nodes[childID]
			if !ok {
				return nil, fmt.Errorf("child %d of node %d: %w", childID, st.data.ID, types.ErrMissingNode)
			}
			if childID == update.Root || childID == st.data.ID {
				return nil, fmt.Errorf("node %d lists %d as child: %w", st.data.ID, childID, types.ErrCycle)
			}
			if child.hasParent {
				return nil, fmt.Errorf("node %d (parents %d and %d): %w",
					childID, child.parent.Parent, st.data.ID, types.ErrMultipleParents)
			}
			child.parent = ParentAndIndex{Parent: st.data.ID, Index: idx}
			child.hasParent = true
		}
	}

	// Every record must hang off the root. Since each node has at most one
	// parent, anything left over is either an orphan subtree or a loop.
	visited := 0
	stack := make([]walkEntry, 0, 64)
	stack = append(stack, walkEntry{id: update.Root})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited++
		if e.depth > limits.MaxDepth {
			return nil, &types.LimitError{Limit: "MaxDepth", Current: e.depth, Maximum: limits.MaxDepth, Node: e.id}
		}
		for _, c := range nodes[e.id].data.Children {
			stack = append(stack, walkEntry{id: c, depth: e.depth + 1})
		}
	}
	if visited != len(nodes) {
		return nil, classifyDetached(arena, nodes, update.Root)
	}

	return &State{
		nodes:      nodes,
		root:       update.Root,
		focus:      update.Focus,
		generation: generation,
	}, nil
}

// classifyDetached finds a record that the root walk did not reach and
// reports whether it sits on a loop or under a parentless orphan.
func classifyDetached(arena []NodeState, nodes map[types.NodeID]*NodeState, root types.NodeID) error {
	for i := range arena {
		st := &arena[i]
		cur := st
		steps := 0
		for cur.hasParent && steps <= len(arena) {
			cur = nodes[cur.parent.Parent]
			steps++
		}
		if cur.data.ID == root {
			continue
		}
		if cur.hasParent {
			return fmt.Errorf("node %d: %w", st.data.ID, types.ErrCycle)
		}
		return fmt.Errorf("node %d: %w", st.data.ID, types.ErrUnreachable)
	}
	return types.ErrCorrupt
}
