package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat   ErrKind = iota // malformed fixture or update input
	ErrKindCorrupt                 // producer contract breach (dangling ids, cycles)
	ErrKindNotFound                // missing node
	ErrKindLimit                   // update exceeds configured Limits
	ErrKindState                   // invalid operation for current state
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindLimit:
		return "limit"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations. They match with
// errors.Is by identity, so wrap them rather than building lookalikes.
var (
	// ErrNotFound indicates a node id absent from the snapshot.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "node not found"}
	// ErrCorrupt indicates an internally inconsistent tree.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "inconsistent tree"}
	// ErrZeroID indicates a node, root or child using the reserved NoNode id.
	ErrZeroID = &Error{Kind: ErrKindCorrupt, Msg: "node id 0 is reserved"}
	// ErrDuplicateNode indicates two records with the same id in one update.
	ErrDuplicateNode = &Error{Kind: ErrKindCorrupt, Msg: "duplicate node id"}
	// ErrMissingNode indicates a root, child or focus id with no record.
	ErrMissingNode = &Error{Kind: ErrKindCorrupt, Msg: "referenced node missing"}
	// ErrMultipleParents indicates a node listed as a child more than once.
	ErrMultipleParents = &Error{Kind: ErrKindCorrupt, Msg: "node has more than one parent"}
	// ErrCycle indicates a child relationship that loops back to an ancestor.
	ErrCycle = &Error{Kind: ErrKindCorrupt, Msg: "cycle in child relationships"}
	// ErrUnreachable indicates a record not reachable from the root.
	ErrUnreachable = &Error{Kind: ErrKindCorrupt, Msg: "node unreachable from root"}
	// ErrUnknownRole indicates a role name that ParseRole does not recognize.
	ErrUnknownRole = &Error{Kind: ErrKindFormat, Msg: "unknown role"}
	// ErrLimitExceeded indicates an update larger or deeper than Limits allow.
	ErrLimitExceeded = &Error{Kind: ErrKindLimit, Msg: "tree limit exceeded"}
)

// KindOf returns the ErrKind of the first *Error in err's chain.
// ok is false when err carries no typed error.
func KindOf(err error) (kind ErrKind, ok bool) {
	for err != nil {
		if te, isTyped := err.(*Error); isTyped {
			return te.Kind, true
		}
		u, canUnwrap := err.(interface{ Unwrap() error })
		if !canUnwrap {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Core Identifiers & Records
// -----------------------------------------------------------------------------

// NodeID is a small, copyable handle naming one node within a tree version.
// Ids are assigned by the producer and stay stable across versions for the
// same logical element.
type NodeID uint64

// NoNode marks an absent id (no focus, no parent). Producers never assign it.
const NoNode NodeID = 0

// NodeData is the semantic record of one node. The tree model only inspects
// ID, Role, Children, Ignored and Invisible; the remaining fields are carried
// through for consumers.
//
// The tree copies every record and its child ids when a version is built,
// so a producer may reuse its NodeData values after the update returns.
type NodeData struct {
	ID          NodeID
	Role        Role
	Name        string
	Value       string
	Description string
	Children    []NodeID // ordered child ids
	Ignored     bool     // excluded from the accessible tree unless focused
	Invisible   bool     // not rendered on screen
}

// TreeUpdate is a complete description of one tree version.
type TreeUpdate struct {
	Nodes []NodeData
	Root  NodeID
	Focus NodeID // NoNode when nothing holds focus
}
