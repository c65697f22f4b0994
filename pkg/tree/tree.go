package tree

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/axkit/pkg/types"
)

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	emptyState    State
)

// Options controls how a Tree validates and reports published versions.
type Options struct {
	// Logger receives publish and rejection events. nil discards them.
	Logger *slog.Logger

	// Limits bounds every published version. nil selects
	// types.DefaultLimits().
	Limits *types.Limits
}

// Tree is the shared container for the current version of an
// accessibility tree. Versions are published whole with Update; a
// published State is never modified, so any number of goroutines may read
// concurrently without locking.
//
// A Tree stays alive while anything holds a strong pointer to it, including
// a Reader or Node obtained from it. WeakNode does not count.
//
// The zero Tree holds no version and uses default limits with logging
// discarded. Until its first Update, Read returns a Reader with no nodes and
// Generation returns 0.
type Tree struct {
	current atomic.Pointer[State]
	mu      sync.Mutex // serializes publishers
	limits  types.Limits
	log     *slog.Logger
}

// New builds the first version of a tree from a complete update.
func New(update types.TreeUpdate, opts Options) (*Tree, error) {
	limits := types.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = discardLogger
	}

	t := &Tree{limits: limits, log: log}
	if err := t.publish(update); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the current version with a new one built from update.
// Readers that already hold the previous version keep seeing it unchanged.
// On error the current version is left in place.
func (t *Tree) Update(update types.TreeUpdate) error {
	return t.publish(update)
}

func (t *Tree) publish(update types.TreeUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.log == nil {
		t.log = discardLogger
	}
	if t.limits == (types.Limits{}) {
		t.limits = types.DefaultLimits()
	}

	next := uint64(1)
	if cur := t.current.Load(); cur != nil {
		next = cur.generation + 1
	}

	st, err := buildState(update, t.limits, next)
	if err != nil {
		t.log.Warn("rejected tree update",
			"generation", next,
			"nodes", len(update.Nodes),
			"error", err)
		return err
	}

	t.current.Store(st)
	t.log.Debug("published tree",
		"generation", st.generation,
		"nodes", len(st.nodes),
		"root", uint64(st.root),
		"focus", uint64(st.focus))
	return nil
}

// Read returns a Reader over the version current at the time of the call.
// The Reader keeps observing that version even if a newer one is published.
func (t *Tree) Read() *Reader {
	return &Reader{tree: t, state: t.load()}
}

// Generation returns the generation of the current version.
func (t *Tree) Generation() uint64 {
	return t.load().generation
}

// load returns the current State, or an empty one before the first publish.
func (t *Tree) load() *State {
	if st := t.current.Load(); st != nil {
		return st
	}
	return &emptyState
}
