package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/axkit/internal/logger"
	"github.com/joshuapare/axkit/pkg/tree"
	"github.com/joshuapare/axkit/pkg/types"
)

var validateLimits string

func init() {
	cmd := newValidateCmd()
	cmd.Flags().
		StringVar(&validateLimits, "limits", "default", "Limits preset: default, strict, relaxed")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate every tree version in a file",
		Long: `The validate command builds each version in a tree file on its own and
reports any that break the tree invariants: duplicate or missing ids, nodes
with more than one parent, cycles, unreachable nodes, or sizes past the
selected limits.

Example:
  axctl validate versions.yaml
  axctl validate big.yaml --limits relaxed
  axctl validate dialog.yaml --limits strict --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

// versionResult is the outcome of building one version.
type versionResult struct {
	Version int    `json:"version"`
	Valid   bool   `json:"valid"`
	Nodes   int    `json:"nodes"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

func limitsPreset(name string) (types.Limits, error) {
	switch name {
	case "default", "":
		return types.DefaultLimits(), nil
	case "strict":
		return types.StrictLimits(), nil
	case "relaxed":
		return types.RelaxedLimits(), nil
	default:
		return types.Limits{}, fmt.Errorf(
			"invalid limits preset: %s (must be default, strict, or relaxed)",
			name,
		)
	}
}

func runValidate(args []string) error {
	limits, err := limitsPreset(validateLimits)
	if err != nil {
		return err
	}

	updates, err := loadVersions(args[0])
	if err != nil {
		return err
	}

	results := make([]versionResult, 0, len(updates))
	invalid := 0
	for i, u := range updates {
		res := versionResult{Version: i + 1, Valid: true, Nodes: len(u.Nodes)}
		if _, err := tree.New(u, tree.Options{Logger: logger.L, Limits: &limits}); err != nil {
			res.Valid = false
			res.Error = err.Error()
			if kind, ok := types.KindOf(err); ok {
				res.Kind = kind.String()
			}
			invalid++
		}
		results = append(results, res)
	}

	if jsonOut {
		if err := printJSON(map[string]any{
			"file":     args[0],
			"limits":   validateLimits,
			"versions": results,
			"valid":    invalid == 0,
		}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				printInfo("version %d: ok (%d nodes)\n", r.Version, r.Nodes)
			} else {
				fmt.Printf("version %d: %s error: %s\n", r.Version, r.Kind, r.Error)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d version(s) invalid", invalid, len(results))
	}
	return nil
}
