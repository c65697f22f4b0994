package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/axkit/pkg/tree"
	"github.com/joshuapare/axkit/pkg/types"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits how many levels are printed (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowIgnored prints the raw tree, ignored nodes included. When false
	// only the accessible tree is printed: ignored nodes are left out and
	// their unignored descendants take their place.
	// Default: false
	ShowIgnored bool

	// ShowIDs prefixes each node with its id (text format only; JSON
	// always carries ids).
	// Default: true
	ShowIDs bool

	// Color enables ANSI colors (text format only).
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		IndentSize:  DefaultIndentSize,
		MaxDepth:    DefaultMaxDepth,
		ShowIgnored: false,
		ShowIDs:     true,
		Color:       false,
	}
}

// Printer handles formatted output of one tree version.
type Printer struct {
	opts    Options
	writer  io.Writer
	reader  *tree.Reader
	palette palette
}

// New creates a new Printer.
//
// The Reader fixes the version that is printed, the Writer receives the
// output, and Options controls formatting behavior.
//
// Example:
//
//	p := printer.New(t.Read(), os.Stdout, printer.DefaultOptions())
//	p.PrintTree(types.NoNode)
func New(r *tree.Reader, w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{
		reader:  r,
		writer:  w,
		opts:    opts,
		palette: newPalette(opts.Color),
	}
}

// PrintTree prints the subtree rooted at id. types.NoNode selects the root.
//
// Example:
//
//	opts := printer.DefaultOptions()
//	opts.MaxDepth = 3
//	printer.New(r, os.Stdout, opts).PrintTree(types.NoNode)
func (p *Printer) PrintTree(id types.NodeID) error {
	start, err := p.resolve(id)
	if err != nil {
		return err
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(start)
	default:
		return p.printTreeText(start)
	}
}

// PrintNode prints one node's properties and its accessible ancestor chain.
func (p *Printer) PrintNode(id types.NodeID) error {
	n, err := p.resolve(id)
	if err != nil {
		return err
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.printNodeJSON(n)
	default:
		return p.printNodeText(n)
	}
}

func (p *Printer) resolve(id types.NodeID) (tree.Node, error) {
	if id == types.NoNode {
		return p.reader.Root(), nil
	}
	n, ok := p.reader.NodeByID(id)
	if !ok {
		return tree.Node{}, fmt.Errorf("node %d: %w", id, types.ErrNotFound)
	}
	return n, nil
}

// children returns the children to print below n in the configured view.
func (p *Printer) children(n tree.Node) []tree.Node {
	seq := n.UnignoredChildren()
	if p.opts.ShowIgnored {
		seq = n.Children()
	}
	var out []tree.Node
	for c := range seq {
		out = append(out, c)
	}
	return out
}

// flags lists the state markers shown next to a node.
func flags(n tree.Node) []string {
	var out []string
	if n.IsFocused() {
		out = append(out, "focused")
	}
	if n.IsInvisible() {
		out = append(out, "invisible")
	}
	if n.IsIgnored() {
		out = append(out, "ignored")
	}
	return out
}
