package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the service logger. LOG_FORMAT=json selects machine
// readable output for deployments; anything else falls back to text for
// local development.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
