package main

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/folio/internal/config"
	"finitefield.org/folio/internal/i18n"
	"finitefield.org/folio/internal/observability"
	"finitefield.org/folio/internal/portfolio"
	"finitefield.org/folio/internal/source"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	labels     *i18n.Bundle
	controller *portfolio.Controller
}

// loadConfig reads the configuration. The default config file is optional; one
// named explicitly with --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := []config.Option{config.WithEnvFile(envFile)}
	if cmd.Flags().Changed("config") {
		opts = append(opts, config.WithFile(cfgFile))
	}
	return config.Load(opts...)
}

func newApp(cfg *config.Config, logOutputs ...string) (*app, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, logOutputs...)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	labels, err := i18n.Load(cfg.I18n.Dir, cfg.Site.DefaultLang, nil)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	var src source.Source
	if cfg.Remote() {
		src = source.NewHTTP(cfg.Content.BaseURL, &http.Client{Timeout: cfg.Content.Timeout.Std()}, 0)
		src = source.NewCached(src, cfg.Content.CacheTTL.Std())
	} else {
		src = source.NewDir(cfg.Content.Dir)
	}
	controller := portfolio.New(portfolio.Options{
		Source:   src,
		Labels:   labels,
		Logger:   logger,
		SiteURL:  cfg.Site.URL,
		Sanitize: cfg.Remote() && cfg.Content.SanitizeFragments,
	})
	logger.Info("content source ready",
		zap.Bool("remote", cfg.Remote()),
		zap.String("dir", filepath.Clean(cfg.Content.Dir)),
		zap.String("base_url", cfg.Content.BaseURL),
		zap.Duration("cache_ttl", cfg.Content.CacheTTL.Std()),
	)
	return &app{cfg: cfg, logger: logger, labels: labels, controller: controller}, nil
}
