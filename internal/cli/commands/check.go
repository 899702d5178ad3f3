package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/internal/content"
	"github.com/inkwell-labs/inkwell/internal/orderstore"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string // Output format: text, json
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the project for navigation drift",
		Long: `Inspect the content root and the sidebar configuration for problems:
an unreachable store, an unparseable ordering document, configured
entries whose content no longer exists, and entries whose kind changed
on disk.

Drift is not an error. The reconciler repairs all of it on the next
save; check just shows what it would do.`,
		Example: `  # Check the project
  inkwell check

  # Output as JSON
  inkwell check --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// CheckResult is one diagnostic finding.
type CheckResult struct {
	Check  string `json:"check"`
	Status string `json:"status"` // ok, warn, fail
	Detail string `json:"detail"`
}

// CheckOutput is the JSON output of the check command.
type CheckOutput struct {
	Results []CheckResult `json:"results"`
	Pages   int           `json:"pages"`
	Folders int           `json:"folders"`
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := gatherChecks(cmd.Context(), cmdCtx)

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Check", "Status", "Detail"})
	for _, res := range out.Results {
		t.AppendRow(table.Row{res.Check, res.Status, res.Detail})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d pages, %d folders\n", out.Pages, out.Folders)
	return nil
}

func gatherChecks(ctx context.Context, cmdCtx *CommandContext) CheckOutput {
	var out CheckOutput

	// Content root
	scanner := content.NewScanner(cmdCtx.Store)
	observed, err := scanner.Scan(ctx)
	if err != nil {
		out.Results = append(out.Results, CheckResult{
			Check: "content root", Status: "fail", Detail: err.Error(),
		})
		return out
	}
	pages, folders := countNodes(observed)
	out.Pages, out.Folders = pages, folders
	out.Results = append(out.Results, CheckResult{
		Check: "content root", Status: "ok",
		Detail: fmt.Sprintf("%s scanned", cmdCtx.Cfg.ContentDir),
	})

	// Ordering document
	orders := orderstore.New(cmdCtx.Store, cmdCtx.Logger)
	configured, _, found, err := orders.Get(ctx)
	switch {
	case err != nil:
		out.Results = append(out.Results, CheckResult{
			Check: "ordering document", Status: "fail", Detail: err.Error(),
		})
	case !found:
		out.Results = append(out.Results, CheckResult{
			Check: "ordering document", Status: "warn",
			Detail: orderstore.DocPath + " missing or unreadable; a fresh one is written on first save",
		})
	default:
		out.Results = append(out.Results, CheckResult{
			Check: "ordering document", Status: "ok", Detail: orderstore.DocPath,
		})
		out.Results = append(out.Results, driftChecks(configured, observed)...)
	}

	// State database
	if version, err := cmdCtx.State.MigrationVersion(); err != nil {
		out.Results = append(out.Results, CheckResult{
			Check: "state database", Status: "fail", Detail: err.Error(),
		})
	} else {
		out.Results = append(out.Results, CheckResult{
			Check: "state database", Status: "ok",
			Detail: fmt.Sprintf("schema version %d", version),
		})
	}

	return out
}

// driftChecks reports configured entries the next reconcile would drop.
func driftChecks(configured, observed nav.Tree) []CheckResult {
	valid := nav.ValidPaths(observed)

	var ghosts, mismatches []string
	var walk func(t nav.Tree)
	walk = func(t nav.Tree) {
		for _, n := range t {
			if n.Kind == nav.KindDivider {
				continue
			}
			if kind, ok := valid[n.Path]; !ok {
				ghosts = append(ghosts, n.Path)
			} else if kind != n.Kind {
				mismatches = append(mismatches, n.Path)
			}
			walk(n.Children)
		}
	}
	walk(configured)

	var results []CheckResult
	if len(ghosts) > 0 {
		results = append(results, CheckResult{
			Check: "ghost entries", Status: "warn",
			Detail: fmt.Sprintf("%d configured entries have no content: %v", len(ghosts), ghosts),
		})
	}
	if len(mismatches) > 0 {
		results = append(results, CheckResult{
			Check: "kind mismatches", Status: "warn",
			Detail: fmt.Sprintf("%d entries changed kind on disk: %v", len(mismatches), mismatches),
		})
	}
	if len(ghosts) == 0 && len(mismatches) == 0 {
		results = append(results, CheckResult{
			Check: "drift", Status: "ok", Detail: "configuration matches content",
		})
	}
	return results
}

func countNodes(t nav.Tree) (pages, folders int) {
	for _, n := range t {
		switch n.Kind {
		case nav.KindPage:
			pages++
		case nav.KindFolder:
			folders++
			p, f := countNodes(n.Children)
			pages += p
			folders += f
		}
	}
	return pages, folders
}
