package app

import (
	"log/slog"
	"os"

	"delivery-manager/internal/config"
	"delivery-manager/internal/logx"
)

// NewLogger returns the JSON stdout logger. Development runs log at debug level.
func NewLogger(cfg *config.Config) logx.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Env == "development" {
		level = slog.LevelDebug
	}
	return logx.NewJSON(os.Stdout, level).With(
		logx.String("service", "delivery-manager"),
	)
}
