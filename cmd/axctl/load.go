package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/axkit/internal/logger"
	"github.com/joshuapare/axkit/internal/treefile"
	"github.com/joshuapare/axkit/pkg/tree"
	"github.com/joshuapare/axkit/pkg/types"
)

// loadVersions reads every tree version stored in a file.
func loadVersions(path string) ([]types.TreeUpdate, error) {
	printVerbose("Loading tree file: %s\n", path)

	updates, err := treefile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree file: %w", err)
	}
	printVerbose("Found %d version(s)\n", len(updates))
	return updates, nil
}

// openTree publishes every version in path in order and returns the tree
// holding the last one.
func openTree(path string) (*tree.Tree, error) {
	updates, err := loadVersions(path)
	if err != nil {
		return nil, err
	}

	t, err := tree.New(updates[0], tree.Options{Logger: logger.L})
	if err != nil {
		return nil, fmt.Errorf("version 1: %w", err)
	}
	for i, u := range updates[1:] {
		if err := t.Update(u); err != nil {
			return nil, fmt.Errorf("version %d: %w", i+2, err)
		}
	}
	return t, nil
}

// parseNodeID parses a decimal node id, optionally written as "#id".
func parseNodeID(s string) (types.NodeID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return types.NoNode, fmt.Errorf("invalid node id %q", s)
	}
	if v == 0 {
		return types.NoNode, types.ErrZeroID
	}
	return types.NodeID(v), nil
}

// resolveNode finds a node by id or, when the argument is not a number, by
// name.
func resolveNode(r *tree.Reader, arg string) (tree.Node, error) {
	id, err := parseNodeID(arg)
	switch {
	case err == nil:
		if n, ok := r.NodeByID(id); ok {
			return n, nil
		}
	case errors.Is(err, types.ErrZeroID):
		return tree.Node{}, err
	default:
		if n, ok := r.FindByName(arg); ok {
			return n, nil
		}
	}
	return tree.Node{}, fmt.Errorf("node %q: %w", arg, types.ErrNotFound)
}
