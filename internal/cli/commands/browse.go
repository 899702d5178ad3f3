package commands

import (
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and reorder the sidebar interactively",
		Long: `Open an interactive terminal browser for the navigation tree.

Folders open and close accordion-style, pinned entries and dividers can
be reordered, and the resulting ordering is saved back next to the
content.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(cmdCtx.Service)
		},
	}
}
