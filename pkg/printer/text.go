package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/axkit/pkg/tree"
)

// NodeLine renders the one-line summary of a node used throughout text
// output: #id role "name" [flags].
func (p *Printer) NodeLine(n tree.Node) string {
	return p.formatNode(n)
}

func (p *Printer) formatNode(n tree.Node) string {
	var b strings.Builder
	if p.opts.ShowIDs {
		b.WriteString(p.palette.id(fmt.Sprintf("#%d", n.ID())))
		b.WriteByte(' ')
	}
	b.WriteString(p.palette.role(n.Role().String()))
	if name := n.Name(); name != "" {
		b.WriteByte(' ')
		b.WriteString(p.palette.name(strconv.Quote(name)))
	}
	if fl := flags(n); len(fl) > 0 {
		b.WriteByte(' ')
		b.WriteString(p.palette.flag("[" + strings.Join(fl, ", ") + "]"))
	}
	if p.opts.ShowIgnored && n.IsInvisibleOrIgnored() {
		return p.palette.hidden(b.String())
	}
	return b.String()
}

type textEntry struct {
	node  tree.Node
	depth int
}

// printTreeText prints a subtree in text format, one node per line.
func (p *Printer) printTreeText(start tree.Node) error {
	stack := []textEntry{{node: start}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Check depth limit
		if p.opts.MaxDepth > 0 && e.depth >= p.opts.MaxDepth {
			continue
		}

		indent := strings.Repeat(" ", e.depth*p.opts.IndentSize)
		if _, err := fmt.Fprintf(p.writer, "%s%s\n", indent, p.formatNode(e.node)); err != nil {
			return err
		}

		kids := p.children(e.node)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, textEntry{node: kids[i], depth: e.depth + 1})
		}
	}
	return nil
}

// printNodeText prints a node's properties in text format.
func (p *Printer) printNodeText(n tree.Node) error {
	var b strings.Builder
	d := n.Data()

	fmt.Fprintf(&b, "%s\n", p.formatNode(n))
	if d.Value != "" {
		fmt.Fprintf(&b, "  value:       %s\n", strconv.Quote(d.Value))
	}
	if d.Description != "" {
		fmt.Fprintf(&b, "  description: %s\n", strconv.Quote(d.Description))
	}
	fmt.Fprintf(&b, "  hidden:      %t\n", n.IsInvisibleOrIgnored())

	if parent, ok := n.Parent(); ok {
		idx, _ := n.IndexInParent()
		fmt.Fprintf(&b, "  parent:      %s\n", p.formatNode(parent))
		fmt.Fprintf(&b, "  index:       %d\n", idx)
	} else {
		b.WriteString("  parent:      (none)\n")
	}
	fmt.Fprintf(&b, "  children:    %d\n", n.ChildCount())

	b.WriteString("  accessible ancestors:\n")
	count := 0
	for a := range n.UnignoredAncestors() {
		fmt.Fprintf(&b, "    %s\n", p.formatNode(a))
		count++
	}
	if count == 0 {
		b.WriteString("    (none)\n")
	}

	_, err := io.WriteString(p.writer, b.String())
	return err
}
