package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/axkit/pkg/printer"
	"github.com/joshuapare/axkit/pkg/types"
)

var (
	treeAll   bool
	treeDepth int
	treeIDs   bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().BoolVar(&treeAll, "all", false, "Show the raw tree, ignored nodes included")
	cmd.Flags().IntVar(&treeDepth, "depth", -1, "Maximum depth (0 = unlimited, default from config)")
	cmd.Flags().BoolVar(&treeIDs, "ids", true, "Prefix nodes with their id")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file> [id|name]",
		Short: "Display the accessible tree",
		Long: `The tree command prints the last version stored in a tree file. By
default only the accessible tree is shown: ignored nodes are left out and
their unignored descendants are promoted in their place.

Example:
  axctl tree dialog.yaml
  axctl tree dialog.yaml 7 --depth 1
  axctl tree dialog.yaml --all --ids=false`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	t, err := openTree(args[0])
	if err != nil {
		return err
	}
	r := t.Read()

	start := types.NoNode
	if len(args) > 1 {
		n, err := resolveNode(r, args[1])
		if err != nil {
			return err
		}
		start = n.ID()
	}

	opts := printer.DefaultOptions()
	opts.IndentSize = cfg.Indent
	opts.MaxDepth = cfg.MaxDepth
	if treeDepth >= 0 {
		opts.MaxDepth = treeDepth
	}
	opts.ShowIgnored = treeAll
	opts.ShowIDs = treeIDs

	if jsonOut {
		opts.Format = printer.FormatJSON
	} else {
		opts.Color = colorEnabled(os.Stdout)
	}
	return printer.New(r, os.Stdout, opts).PrintTree(start)
}
