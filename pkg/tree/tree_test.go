package tree

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joshuapare/axkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesParentAndIndex(t *testing.T) {
	tr := newTestTree(t, 3,
		rec(1, types.RoleWindow, 2, 3),
		rec(2, types.RoleButton),
		rec(3, types.RoleGroup, 4),
		rec(4, types.RoleLink),
	)
	st := tr.Read().State()

	got := map[types.NodeID]ParentAndIndex{}
	for id, ns := range st.nodes {
		if pi, ok := ns.ParentAndIndex(); ok {
			got[id] = pi
		}
	}
	want := map[types.NodeID]ParentAndIndex{
		2: {Parent: 1, Index: 0},
		3: {Parent: 1, Index: 1},
		4: {Parent: 3, Index: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parent links mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, types.NodeID(1), st.Root())
	assert.Equal(t, types.NodeID(3), st.Focus())
	assert.Equal(t, uint64(1), st.Generation())
	assert.Equal(t, 4, st.Len())
}

func TestNew_RejectsMalformedUpdates(t *testing.T) {
	tests := []struct {
		name   string
		update types.TreeUpdate
		want   error
	}{
		{
			name:   "zero root",
			update: types.TreeUpdate{Nodes: []types.NodeData{rec(1, types.RoleWindow)}},
			want:   types.ErrZeroID,
		},
		{
			name:   "zero record id",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow), rec(0, types.RoleButton)}},
			want:   types.ErrZeroID,
		},
		{
			name:   "zero child id",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 0)}},
			want:   types.ErrZeroID,
		},
		{
			name:   "duplicate id",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 2), rec(2, types.RoleButton), rec(2, types.RoleLink)}},
			want:   types.ErrDuplicateNode,
		},
		{
			name:   "missing root",
			update: types.TreeUpdate{Root: 9, Nodes: []types.NodeData{rec(1, types.RoleWindow)}},
			want:   types.ErrMissingNode,
		},
		{
			name:   "missing child",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 2)}},
			want:   types.ErrMissingNode,
		},
		{
			name:   "missing focus",
			update: types.TreeUpdate{Root: 1, Focus: 5, Nodes: []types.NodeData{rec(1, types.RoleWindow)}},
			want:   types.ErrMissingNode,
		},
		{
			name: "two parents",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{
				rec(1, types.RoleWindow, 2, 3), rec(2, types.RoleGroup, 4), rec(3, types.RoleGroup, 4), rec(4, types.RoleButton),
			}},
			want: types.ErrMultipleParents,
		},
		{
			name: "same child listed twice",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{
				rec(1, types.RoleWindow, 2, 2), rec(2, types.RoleButton),
			}},
			want: types.ErrMultipleParents,
		},
		{
			name:   "root as child",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 2), rec(2, types.RoleGroup, 1)}},
			want:   types.ErrCycle,
		},
		{
			name:   "self child",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 2), rec(2, types.RoleGroup, 2)}},
			want:   types.ErrCycle,
		},
		{
			name: "detached loop",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{
				rec(1, types.RoleWindow), rec(2, types.RoleGroup, 3), rec(3, types.RoleGroup, 2),
			}},
			want: types.ErrCycle,
		},
		{
			name: "orphan",
			update: types.TreeUpdate{Root: 1, Nodes: []types.NodeData{
				rec(1, types.RoleWindow), rec(2, types.RoleGroup, 3), rec(3, types.RoleButton),
			}},
			want: types.ErrUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.update, Options{})
			require.Nil(t, tr)
			require.ErrorIs(t, err, tt.want)

			kind, ok := types.KindOf(err)
			require.True(t, ok)
			require.Equal(t, types.ErrKindCorrupt, kind)
		})
	}
}

func TestNew_EnforcesLimits(t *testing.T) {
	wide := []types.NodeData{rec(1, types.RoleList, 2, 3, 4), rec(2, types.RoleListItem), rec(3, types.RoleListItem), rec(4, types.RoleListItem)}
	deep := []types.NodeData{rec(1, types.RoleWindow, 2), rec(2, types.RoleGroup, 3), rec(3, types.RoleGroup, 4), rec(4, types.RoleButton)}

	tests := []struct {
		name   string
		nodes  []types.NodeData
		limits types.Limits
		limit  string
	}{
		{name: "nodes", nodes: wide, limits: types.Limits{MaxNodes: 3, MaxDepth: 10, MaxChildren: 10}, limit: "MaxNodes"},
		{name: "children", nodes: wide, limits: types.Limits{MaxNodes: 10, MaxDepth: 10, MaxChildren: 2}, limit: "MaxChildren"},
		{name: "depth", nodes: deep, limits: types.Limits{MaxNodes: 10, MaxDepth: 2, MaxChildren: 10}, limit: "MaxDepth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(types.TreeUpdate{Nodes: tt.nodes, Root: 1}, Options{Limits: &tt.limits})
			require.ErrorIs(t, err, types.ErrLimitExceeded)

			var le *types.LimitError
			require.ErrorAs(t, err, &le)
			require.Equal(t, tt.limit, le.Limit)
		})
	}

	// Depth equal to the limit is fine.
	exact := types.Limits{MaxNodes: 10, MaxDepth: 3, MaxChildren: 10}
	_, err := New(types.TreeUpdate{Nodes: deep, Root: 1}, Options{Limits: &exact})
	require.NoError(t, err)
}

func TestNew_RejectsInvalidLimits(t *testing.T) {
	bad := types.Limits{}
	_, err := New(types.TreeUpdate{Nodes: []types.NodeData{rec(1, types.RoleWindow)}, Root: 1}, Options{Limits: &bad})
	require.Error(t, err)
}

func TestUpdate_PublishesNewGeneration(t *testing.T) {
	tr := newTestTree(t, types.NoNode, rec(1, types.RoleWindow, 2), named(rec(2, types.RoleButton), "Old"))
	before := tr.Read()

	err := tr.Update(types.TreeUpdate{
		Root:  1,
		Focus: 2,
		Nodes: []types.NodeData{rec(1, types.RoleWindow, 2, 3), named(rec(2, types.RoleButton), "New"), rec(3, types.RoleLink)},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(2), tr.Generation())

	// The old reader still sees its own version.
	require.Equal(t, uint64(1), before.Generation())
	require.Equal(t, "Old", mustNode(t, before, 2).Name())
	_, ok := before.NodeByID(3)
	require.False(t, ok)
	_, ok = before.Focus()
	require.False(t, ok)

	after := tr.Read()
	require.Equal(t, "New", mustNode(t, after, 2).Name())
	focus, ok := after.Focus()
	require.True(t, ok)
	require.Equal(t, types.NodeID(2), focus.ID())
	require.Equal(t, 3, after.Len())
}

func TestUpdate_RejectedUpdateKeepsCurrentVersion(t *testing.T) {
	tr := newTestTree(t, types.NoNode, rec(1, types.RoleWindow))

	err := tr.Update(types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 2)}})
	require.ErrorIs(t, err, types.ErrMissingNode)
	require.Equal(t, uint64(1), tr.Generation())

	require.NoError(t, tr.Update(types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow)}}))
	require.Equal(t, uint64(2), tr.Generation())
}

func TestUpdate_LogsPublishAndReject(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr, err := New(types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow)}}, Options{Logger: logger})
	require.NoError(t, err)
	require.Error(t, tr.Update(types.TreeUpdate{}))

	out := buf.String()
	assert.Contains(t, out, "published tree")
	assert.Contains(t, out, "generation=1")
	assert.Contains(t, out, "rejected tree update")
	assert.Contains(t, out, "generation=2")
}

func TestReader_NodeByID(t *testing.T) {
	r := presentationTree(t, types.NoNode).Read()

	n, ok := r.NodeByID(3)
	require.True(t, ok)
	require.Equal(t, types.RoleButton, n.Role())

	n, ok = r.NodeByID(42)
	require.False(t, ok)
	require.Equal(t, Node{}, n)

	_, ok = r.NodeByID(types.NoNode)
	require.False(t, ok)
}

func TestReader_NodeByIDDoesNotAllocate(t *testing.T) {
	r := presentationTree(t, 2).Read()
	allocs := testing.AllocsPerRun(100, func() {
		n, _ := r.NodeByID(3)
		_, _ = n.UnignoredParent()
		_ = n.IsInvisibleOrIgnored()
	})
	require.Zero(t, allocs)
}

func TestReader_Walk(t *testing.T) {
	r := newTestTree(t, types.NoNode,
		rec(1, types.RoleWindow, 2, 4),
		rec(2, types.RoleGroup, 3),
		rec(3, types.RoleButton),
		rec(4, types.RoleLink),
	).Read()

	type visit struct {
		ID    types.NodeID
		Depth int
	}
	var got []visit
	r.Walk(func(n Node, depth int) bool {
		got = append(got, visit{n.ID(), depth})
		return true
	})
	want := []visit{{1, 0}, {2, 1}, {3, 2}, {4, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}

	count := 0
	r.Walk(func(Node, int) bool {
		count++
		return count < 2
	})
	require.Equal(t, 2, count)
}

func TestReader_FindByName(t *testing.T) {
	r := newTestTree(t, types.NoNode,
		named(rec(1, types.RoleWindow, 2, 3), "Settings"),
		named(rec(2, types.RoleButton), "Save"),
		named(rec(3, types.RoleButton), "ÉCOLE"),
	).Read()

	n, ok := r.FindByName("save")
	require.True(t, ok)
	require.Equal(t, types.NodeID(2), n.ID())

	n, ok = r.FindByName("école")
	require.True(t, ok)
	require.Equal(t, types.NodeID(3), n.ID())

	_, ok = r.FindByName("cancel")
	require.False(t, ok)
	_, ok = r.FindByName("")
	require.False(t, ok)
}

func TestTree_ConcurrentReadersDuringUpdates(t *testing.T) {
	version := func(gen int) types.TreeUpdate {
		nodes := []types.NodeData{rec(1, types.RoleWindow, 2), rec(2, types.RolePresentation, 3)}
		leaf := rec(3, types.RoleButton)
		if gen%2 == 0 {
			leaf.Ignored = true
		}
		return types.TreeUpdate{Root: 1, Focus: 3, Nodes: append(nodes, leaf)}
	}

	tr, err := New(version(1), Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 8)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				r := tr.Read()
				leaf, ok := r.NodeByID(3)
				if !ok {
					errs <- "leaf missing"
					return
				}
				// Focus overrides ignore in every version.
				if leaf.IsInvisibleOrIgnored() {
					errs <- "focused leaf hidden"
					return
				}
				p, ok := leaf.UnignoredParent()
				if !ok || p.ID() != 1 {
					errs <- "wrong unignored parent"
					return
				}
				// The reader's own version is stable across calls.
				if leaf.Data().Ignored != (r.Generation()%2 == 0) {
					errs <- "torn read"
					return
				}
			}
		}()
	}

	for gen := 2; gen <= 200; gen++ {
		require.NoError(t, tr.Update(version(gen)))
	}
	close(stop)
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	require.Equal(t, uint64(200), tr.Generation())
}

func TestNew_CopiesChildIDs(t *testing.T) {
	update := types.TreeUpdate{
		Root: 1,
		Nodes: []types.NodeData{
			rec(1, types.RoleWindow, 2, 3),
			rec(2, types.RoleButton),
			rec(3, types.RoleGroup, 4),
			rec(4, types.RoleLink),
		},
	}
	tr, err := New(update, Options{})
	require.NoError(t, err)
	r := tr.Read()

	// The producer reuses its buffers for the next version.
	update.Nodes[0].Children[0] = 99
	update.Nodes[2].Children[0] = 2
	update.Nodes[0].Children = append(update.Nodes[0].Children[:1], 4)

	require.Equal(t, []types.NodeID{2, 3}, ids(r.Root().Children()))
	require.Equal(t, []types.NodeID{4}, ids(mustNode(t, r, 3).Children()))
	require.Equal(t, []types.NodeID{2, 3}, mustNode(t, tr.Read(), 1).Data().Children)
}

func TestUpdate_CopiesChildIDs(t *testing.T) {
	tr := newTestTree(t, types.NoNode, rec(1, types.RoleWindow))

	children := []types.NodeID{2, 3}
	require.NoError(t, tr.Update(types.TreeUpdate{Root: 1, Nodes: []types.NodeData{
		{ID: 1, Role: types.RoleWindow, Children: children},
		rec(2, types.RoleButton),
		rec(3, types.RoleButton),
	}}))
	r := tr.Read()

	children[1] = 1
	require.Equal(t, []types.NodeID{2, 3}, ids(r.Root().Children()))
	parent, ok := mustNode(t, r, 3).Parent()
	require.True(t, ok)
	require.Equal(t, types.NodeID(1), parent.ID())
}

func TestTree_ZeroValue(t *testing.T) {
	var tr Tree

	r := tr.Read()
	require.Equal(t, uint64(0), tr.Generation())
	require.Equal(t, 0, r.Len())
	_, ok := r.NodeByID(1)
	require.False(t, ok)
	_, ok = r.Focus()
	require.False(t, ok)
	_, ok = r.FindByName("anything")
	require.False(t, ok)
	r.Walk(func(Node, int) bool {
		t.Fatal("walked an empty reader")
		return false
	})

	require.ErrorIs(t, tr.Update(types.TreeUpdate{Root: 1}), types.ErrMissingNode)
	require.Equal(t, uint64(0), tr.Generation())

	require.NoError(t, tr.Update(types.TreeUpdate{Root: 1, Nodes: []types.NodeData{rec(1, types.RoleWindow, 2), rec(2, types.RoleButton)}}))
	require.Equal(t, uint64(1), tr.Generation())
	require.Equal(t, types.NodeID(1), tr.Read().Root().ID())

	_, ok = r.NodeByID(1)
	require.False(t, ok, "an earlier Reader keeps its empty version")
}
