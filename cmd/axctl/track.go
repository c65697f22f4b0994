package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/axkit/internal/logger"
	"github.com/joshuapare/axkit/pkg/printer"
	"github.com/joshuapare/axkit/pkg/tree"
)

func init() {
	rootCmd.AddCommand(newTrackCmd())
}

func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track <file> <id|name>",
		Short: "Follow a node across tree versions",
		Long: `The track command takes a weak reference to a node in the first
version of a tree file, then publishes every later version and reports how
the reference resolves in each one. A node that disappears shows as gone and
reappears once a later version carries its id again.

Example:
  axctl track versions.yaml 3
  axctl track versions.yaml Save --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(args)
		},
	}
	return cmd
}

// trackStep is how a tracked node looked in one generation.
type trackStep struct {
	Generation       uint64 `json:"generation"`
	Present          bool   `json:"present"`
	Role             string `json:"role,omitempty"`
	Name             string `json:"name,omitempty"`
	Focused          bool   `json:"focused,omitempty"`
	Ignored          bool   `json:"ignored,omitempty"`
	AccessibleParent uint64 `json:"accessible_parent,omitempty"`

	line       string
	parentLine string
}

type trackResult struct {
	ID    uint64      `json:"id"`
	Steps []trackStep `json:"steps"`
}

func runTrack(args []string) error {
	updates, err := loadVersions(args[0])
	if err != nil {
		return err
	}

	t, err := tree.New(updates[0], tree.Options{Logger: logger.L})
	if err != nil {
		return fmt.Errorf("version 1: %w", err)
	}
	n, err := resolveNode(t.Read(), args[1])
	if err != nil {
		return err
	}
	w := n.Downgrade()

	opts := printer.DefaultOptions()
	if !jsonOut {
		opts.Color = colorEnabled(os.Stdout)
	}

	result := trackResult{ID: uint64(w.ID())}
	result.Steps = append(result.Steps, observe(t, w, opts))
	for i, u := range updates[1:] {
		if err := t.Update(u); err != nil {
			return fmt.Errorf("version %d: %w", i+2, err)
		}
		result.Steps = append(result.Steps, observe(t, w, opts))
	}

	if jsonOut {
		return printJSON(result)
	}

	printInfo("Tracking node #%d across %d version(s)\n", result.ID, len(result.Steps))
	for _, s := range result.Steps {
		switch {
		case !s.Present:
			fmt.Printf("generation %d: gone\n", s.Generation)
		case s.parentLine == "":
			fmt.Printf("generation %d: %s\n", s.Generation, s.line)
		default:
			fmt.Printf("generation %d: %s  (accessible parent %s)\n", s.Generation, s.line, s.parentLine)
		}
	}
	return nil
}

// observe resolves w against the version t currently holds.
func observe(t *tree.Tree, w tree.WeakNode, opts printer.Options) trackStep {
	step, ok := tree.Map(w, func(n tree.Node) trackStep {
		p := printer.New(n.Reader(), io.Discard, opts)
		s := trackStep{
			Generation: n.Reader().Generation(),
			Present:    true,
			Role:       n.Role().String(),
			Name:       n.Name(),
			Focused:    n.IsFocused(),
			Ignored:    n.IsIgnored(),
			line:       p.NodeLine(n),
		}
		if parent, ok := n.UnignoredParent(); ok {
			s.AccessibleParent = uint64(parent.ID())
			s.parentLine = p.NodeLine(parent)
		}
		return s
	})
	if !ok {
		return trackStep{Generation: t.Generation()}
	}
	logger.Debug("resolved tracked node", "id", w.ID(), "generation", step.Generation)
	return step
}
