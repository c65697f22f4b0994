package tree

import (
	"iter"
	"testing"

	"github.com/joshuapare/axkit/pkg/types"
	"github.com/stretchr/testify/require"
)

// rec builds a node record with the given role and children.
func rec(id types.NodeID, role types.Role, children ...types.NodeID) types.NodeData {
	return types.NodeData{ID: id, Role: role, Children: children}
}

func ignored(d types.NodeData) types.NodeData {
	d.Ignored = true
	return d
}

func invisible(d types.NodeData) types.NodeData {
	d.Invisible = true
	return d
}

func named(d types.NodeData, name string) types.NodeData {
	d.Name = name
	return d
}

// newTestTree builds a tree rooted at the first record.
func newTestTree(t *testing.T, focus types.NodeID, nodes ...types.NodeData) *Tree {
	t.Helper()
	tr, err := New(types.TreeUpdate{Nodes: nodes, Root: nodes[0].ID, Focus: focus}, Options{})
	require.NoError(t, err)
	return tr
}

// mustNode resolves id or fails the test.
func mustNode(t *testing.T, r *Reader, id types.NodeID) Node {
	t.Helper()
	n, ok := r.NodeByID(id)
	require.True(t, ok, "node %d not found", id)
	return n
}

func ids(seq iter.Seq[Node]) []types.NodeID {
	var out []types.NodeID
	for n := range seq {
		out = append(out, n.ID())
	}
	return out
}

// presentationTree is R(1) -> C1(2, presentation) -> C2(3).
func presentationTree(t *testing.T, focus types.NodeID) *Tree {
	t.Helper()
	return newTestTree(t, focus,
		rec(1, types.RoleWindow, 2),
		rec(2, types.RolePresentation, 3),
		rec(3, types.RoleButton),
	)
}
