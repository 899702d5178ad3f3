package commands

import (
	"context"
	"log/slog"

	"github.com/inkwell-labs/inkwell/internal/config"
)

type configKey struct{}
type loggerKey struct{}

// WithConfig stores the resolved config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the config stored in the context, or defaults when a
// command runs without the root command's pre-run.
func ConfigFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		ContentDir: config.DefaultContentDir,
		StatePath:  config.DefaultStatePath,
		Port:       config.DefaultPort,
	}
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the logger stored in the context, or the default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
