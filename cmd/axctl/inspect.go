package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/axkit/pkg/printer"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file> <id|name>",
		Short: "Show details of one node",
		Long: `The inspect command shows a single node of the last version: its
role, state flags, position under its parent and the chain of accessible
ancestors up to the root. Names are matched without regard to case.

Example:
  axctl inspect dialog.yaml 6
  axctl inspect dialog.yaml "user name" --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

func runInspect(args []string) error {
	t, err := openTree(args[0])
	if err != nil {
		return err
	}
	r := t.Read()

	n, err := resolveNode(r, args[1])
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.IndentSize = cfg.Indent
	if jsonOut {
		opts.Format = printer.FormatJSON
	} else {
		opts.Color = colorEnabled(os.Stdout)
	}
	return printer.New(r, os.Stdout, opts).PrintNode(n.ID())
}
