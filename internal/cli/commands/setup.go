package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/service"
	"github.com/inkwell-labs/inkwell/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Store   *blob.FSStore
	State   *state.SQLiteStore
	Service *service.Service
}

// NewCommandContext wires the content store, the state database, and the
// service. Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := ConfigFrom(cmd.Context())
	logger := LoggerFrom(cmd.Context())

	store, err := blob.NewFSStore(cfg.ContentDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open content root: %w", err)
	}

	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	st, err := state.Open(cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state database: %w", err)
	}

	svc := service.New(service.Config{
		Store:     store,
		Snapshots: st,
		Logger:    logger,
	})

	cleanup := func() {
		_ = st.Close()
	}

	return &CommandContext{
		Cfg:     cfg,
		Logger:  logger,
		Store:   store,
		State:   st,
		Service: svc,
	}, cleanup, nil
}
