// Package commands implements the jobmatchctl actions.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"jobmatch/cmd"
	"jobmatch/internal/pkg/logging"

	"gorm.io/gorm"
)

// AppContext holds what every action needs.
type AppContext struct {
	Config cmd.Config
	Root   cmd.CompositionRoot
	Logger *slog.Logger
	db     *gorm.DB
}

// NewAppContext loads the configuration and connects to the database.
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := cmd.OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	root, err := cmd.NewCompositionRoot(cfg, db, logger)
	if err != nil {
		_ = cmd.CloseDatabase(db)
		return nil, fmt.Errorf("wire handlers: %w", err)
	}

	return &AppContext{Config: cfg, Root: root, Logger: logger, db: db}, nil
}

func (ac *AppContext) Close() {
	if err := cmd.CloseDatabase(ac.db); err != nil {
		ac.Logger.Warn("close database", "error", err)
	}
}
