package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sidebar API server",
		Long: `Start a local HTTP server exposing the navigation tree and page
content as a JSON API.

The server reconciles the sidebar ordering against the content on every
read, so edits made directly on disk show up without restarts. With
--watch enabled it also refreshes the cached tree as files change.`,
		Example: `  # Start on the configured port
  inkwell serve

  # Start on a custom port with the watcher enabled
  inkwell serve --port 3000 --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch the content root for changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	secret := cfg.SessionSecret
	if secret == "" {
		// Sessions only carry sidebar open-state, so an ephemeral secret
		// costs nothing beyond resetting open folders on restart.
		secret = uuid.NewString()
	}

	server := ui.NewServer(ui.Config{
		Service:       cmdCtx.Service,
		Port:          cfg.Port,
		Watch:         watch,
		SessionSecret: secret,
		Logger:        cmdCtx.Logger,
		ContentDir:    cmdCtx.Store.Root(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://localhost:%d\n", cfg.ContentDir, cfg.Port)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}
