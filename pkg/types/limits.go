package types

import "fmt"

// ============================================================================
// Tree Size Limits
// ============================================================================
// Platform accessibility APIs walk trees synchronously on OS callback
// threads, so very large or very deep trees degrade every query. These
// constants bound what a single update may publish.

const (
	// DefaultMaxNodes bounds the number of records in one tree version.
	DefaultMaxNodes = 1 << 20

	// RelaxedMaxNodes allows very large documents (e.g. long web pages).
	RelaxedMaxNodes = 1 << 24

	// StrictMaxNodes is a conservative bound for constrained environments.
	StrictMaxNodes = 1 << 16

	// DefaultMaxDepth is the practical depth limit of a UI tree.
	DefaultMaxDepth = 512

	// RelaxedMaxDepth allows very deep trees for special cases.
	RelaxedMaxDepth = 4096

	// StrictMaxDepth is a conservative depth limit.
	StrictMaxDepth = 128

	// DefaultMaxChildren bounds the children of a single node.
	DefaultMaxChildren = 1 << 16

	// StrictChildrenDivisor derives the strict child limit from the default.
	StrictChildrenDivisor = 16
)

// Limits defines constraints applied when a tree version is built, to
// prevent resource exhaustion from runaway producers.
type Limits struct {
	// MaxNodes is the maximum number of nodes in one version.
	MaxNodes int

	// MaxDepth is the maximum distance from the root to any node.
	// The root itself is at depth 0.
	MaxDepth int

	// MaxChildren is the maximum number of children of one node.
	MaxChildren int
}

// DefaultLimits returns limits suitable for desktop application trees.
func DefaultLimits() Limits {
	return Limits{
		MaxNodes:    DefaultMaxNodes,
		MaxDepth:    DefaultMaxDepth,
		MaxChildren: DefaultMaxChildren,
	}
}

// RelaxedLimits returns more permissive limits for document-heavy producers.
func RelaxedLimits() Limits {
	return Limits{
		MaxNodes:    RelaxedMaxNodes,
		MaxDepth:    RelaxedMaxDepth,
		MaxChildren: DefaultMaxChildren,
	}
}

// StrictLimits returns conservative limits for constrained environments.
func StrictLimits() Limits {
	return Limits{
		MaxNodes:    StrictMaxNodes,
		MaxDepth:    StrictMaxDepth,
		MaxChildren: DefaultMaxChildren / StrictChildrenDivisor,
	}
}

// Validate reports whether the limits themselves are usable.
func (l Limits) Validate() error {
	if l.MaxNodes <= 0 || l.MaxDepth <= 0 || l.MaxChildren <= 0 {
		return &Error{
			Kind: ErrKindState,
			Msg:  fmt.Sprintf("invalid limits: nodes=%d depth=%d children=%d", l.MaxNodes, l.MaxDepth, l.MaxChildren),
		}
	}
	return nil
}

// LimitError reports which limit an update exceeded. It unwraps to
// ErrLimitExceeded.
type LimitError struct {
	Limit   string // name of the limit that was exceeded
	Current int    // observed value
	Maximum int    // maximum allowed value
	Node    NodeID // node where the limit tripped (NoNode for tree-wide limits)
}

func (e *LimitError) Error() string {
	if e.Node != NoNode {
		return fmt.Sprintf("tree limit exceeded at node %d: %s is %d (max %d)",
			e.Node, e.Limit, e.Current, e.Maximum)
	}
	return fmt.Sprintf("tree limit exceeded: %s is %d (max %d)", e.Limit, e.Current, e.Maximum)
}

func (e *LimitError) Unwrap() error { return ErrLimitExceeded }
