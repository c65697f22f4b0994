package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/axkit/pkg/tree"
)

// jsonNode represents a node in JSON format.
type jsonNode struct {
	ID          uint64     `json:"id"`
	Role        string     `json:"role"`
	Name        string     `json:"name,omitempty"`
	Value       string     `json:"value,omitempty"`
	Description string     `json:"description,omitempty"`
	Focused     bool       `json:"focused,omitempty"`
	Invisible   bool       `json:"invisible,omitempty"`
	Ignored     bool       `json:"ignored,omitempty"`
	Children    []jsonNode `json:"children,omitempty"`
}

// jsonRef is a short reference to another node.
type jsonRef struct {
	ID   uint64 `json:"id"`
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

// jsonDetail represents a single node with its relationships.
type jsonDetail struct {
	jsonNode
	Hidden              bool      `json:"hidden"`
	Parent              *jsonRef  `json:"parent,omitempty"`
	Index               *int      `json:"index,omitempty"`
	ChildCount          int       `json:"child_count"`
	AccessibleAncestors []jsonRef `json:"accessible_ancestors"`
}

func toJSONNode(n tree.Node) jsonNode {
	d := n.Data()
	return jsonNode{
		ID:          uint64(d.ID),
		Role:        d.Role.String(),
		Name:        d.Name,
		Value:       d.Value,
		Description: d.Description,
		Focused:     n.IsFocused(),
		Invisible:   d.Invisible,
		Ignored:     n.IsIgnored(),
	}
}

func toJSONRef(n tree.Node) jsonRef {
	return jsonRef{ID: uint64(n.ID()), Role: n.Role().String(), Name: n.Name()}
}

// printTreeJSON prints a subtree as one nested JSON document.
func (p *Printer) printTreeJSON(start tree.Node) error {
	root := p.buildJSONTree(start, 0)

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// buildJSONTree builds a JSON tree structure recursively.
func (p *Printer) buildJSONTree(n tree.Node, depth int) jsonNode {
	out := toJSONNode(n)

	// Check depth limit for children
	if p.opts.MaxDepth > 0 && depth+1 >= p.opts.MaxDepth {
		return out
	}

	kids := p.children(n)
	if len(kids) > 0 {
		out.Children = make([]jsonNode, 0, len(kids))
		for _, c := range kids {
			out.Children = append(out.Children, p.buildJSONTree(c, depth+1))
		}
	}
	return out
}

// printNodeJSON prints one node with its parent and accessible ancestors.
func (p *Printer) printNodeJSON(n tree.Node) error {
	detail := jsonDetail{
		jsonNode:            toJSONNode(n),
		Hidden:              n.IsInvisibleOrIgnored(),
		ChildCount:          n.ChildCount(),
		AccessibleAncestors: []jsonRef{},
	}
	if parent, ok := n.Parent(); ok {
		ref := toJSONRef(parent)
		idx, _ := n.IndexInParent()
		detail.Parent = &ref
		detail.Index = &idx
	}
	for a := range n.UnignoredAncestors() {
		detail.AccessibleAncestors = append(detail.AccessibleAncestors, toJSONRef(a))
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
