package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/joshuapare/axkit/pkg/types"
)

type document struct {
	Root  uint64     `yaml:"root"`
	Focus uint64     `yaml:"focus"`
	Nodes []nodeEntry `yaml:"nodes"`
}

type nodeEntry struct {
	ID          uint64   `yaml:"id"`
	Role        string   `yaml:"role"`
	Name        string   `yaml:"name"`
	Value       string   `yaml:"value"`
	Description string   `yaml:"description"`
	Children    []uint64 `yaml:"children"`
	Ignored     bool     `yaml:"ignored"`
	Invisible   bool     `yaml:"invisible"`
}

// Load reads every tree version from the file at path.
func Load(path string) ([]types.TreeUpdate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree file: %w", err)
	}
	defer f.Close()

	updates, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return updates, nil
}

// Parse reads every tree version from data.
func Parse(data []byte) ([]types.TreeUpdate, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads every tree version from r. Documents without nodes are
// skipped; a stream with no versions at all is an error.
func Decode(r io.Reader) ([]types.TreeUpdate, error) {
	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())

	var updates []types.TreeUpdate
	for index := 0; ; index++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &types.Error{
				Kind: types.ErrKindFormat,
				Msg:  fmt.Sprintf("document %d", index),
				Err:  err,
			}
		}
		if len(doc.Nodes) == 0 {
			continue
		}

		update, err := doc.toUpdate()
		if err != nil {
			return nil, &types.Error{
				Kind: types.ErrKindFormat,
				Msg:  fmt.Sprintf("document %d", index),
				Err:  err,
			}
		}
		updates = append(updates, update)
	}

	if len(updates) == 0 {
		return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "no tree versions in input"}
	}
	return updates, nil
}

func (d document) toUpdate() (types.TreeUpdate, error) {
	update := types.TreeUpdate{
		Root:  types.NodeID(d.Root),
		Focus: types.NodeID(d.Focus),
		Nodes: make([]types.NodeData, 0, len(d.Nodes)),
	}
	if update.Root == types.NoNode {
		update.Root = types.NodeID(d.Nodes[0].ID)
	}

	for i, entry := range d.Nodes {
		role := types.RoleUnknown
		if entry.Role != "" {
			var err error
			role, err = types.ParseRole(entry.Role)
			if err != nil {
				return types.TreeUpdate{}, fmt.Errorf("node %d (entry %d): %w", entry.ID, i, err)
			}
		}

		var children []types.NodeID
		if len(entry.Children) > 0 {
			children = make([]types.NodeID, len(entry.Children))
			for j, c := range entry.Children {
				children[j] = types.NodeID(c)
			}
		}

		update.Nodes = append(update.Nodes, types.NodeData{
			ID:          types.NodeID(entry.ID),
			Role:        role,
			Name:        entry.Name,
			Value:       entry.Value,
			Description: entry.Description,
			Children:    children,
			Ignored:     entry.Ignored,
			Invisible:   entry.Invisible,
		})
	}
	return update, nil
}
