package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// TreeOptions holds options for the tree command.
type TreeOptions struct {
	Format string // Output format: text, json
}

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	opts := &TreeOptions{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the reconciled navigation tree",
		Long: `Print the sidebar exactly as the UI would show it: the configured
ordering merged with the content on disk, then display-sorted.`,
		Example: `  # Print the tree
  inkwell tree

  # Output as JSON
  inkwell tree --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// TreeJSONOutput is the JSON output structure for the tree command.
type TreeJSONOutput struct {
	Tree  nav.Tree `json:"tree"`
	Stale bool     `json:"stale"`
}

func runTree(cmd *cobra.Command, opts *TreeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cmdCtx.Service.DisplayTree(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build navigation tree: %w", err)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(TreeJSONOutput{Tree: res.Tree, Stale: res.Stale})
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Sidebar", "Kind", "Order", "Pinned"})
	appendRows(t, res.Tree, 0)
	t.Render()

	if res.Stale {
		fmt.Fprintln(cmd.OutOrStdout(), "warning: content store unreachable, showing last known tree")
	}
	return nil
}

func appendRows(t table.Writer, tree nav.Tree, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range tree {
		switch n.Kind {
		case nav.KindDivider:
			t.AppendRow(table.Row{indent + "────────", "divider", n.Order, ""})
		case nav.KindFolder:
			t.AppendRow(table.Row{indent + n.Name() + "/", "folder", n.Order, pinMark(n)})
			appendRows(t, n.Children, depth+1)
		default:
			t.AppendRow(table.Row{indent + n.Name(), "page", n.Order, pinMark(n)})
		}
	}
}

func pinMark(n *nav.Node) string {
	if n.Pinned {
		return "yes"
	}
	return ""
}
