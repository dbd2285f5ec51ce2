// Package app wires configuration, logging, the API client, and the UI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bookdesk/bookdesk/internal/api"
	"github.com/bookdesk/bookdesk/internal/config"
	"github.com/bookdesk/bookdesk/internal/logging"
	"github.com/bookdesk/bookdesk/internal/prefs"
	"github.com/bookdesk/bookdesk/internal/ui"
)

// Options configure the bookdesk application.
type Options struct {
	ConfigPath string
	Server     string // overrides the configured server address
	PrefsPath  string // empty uses default ~/.config/bookdesk/prefs.toml
}

// Run boots the bookdesk TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Server != "" {
		cfg.Server = opts.Server
	}

	logger, flush, err := logging.New(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = flush() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.Server)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	logger.Info("starting", zap.String("server", cfg.Server))

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
