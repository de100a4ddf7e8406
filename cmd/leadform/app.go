package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/internal/logging/gologger"
	"github.com/goliatone/go-leadform/internal/metrics"
	"github.com/goliatone/go-leadform/pkg/config"
	"github.com/goliatone/go-leadform/pkg/extraction"
	"github.com/goliatone/go-leadform/pkg/interfaces"
	"github.com/goliatone/go-leadform/pkg/render"
)

// app bundles the collaborators every subcommand shares.
type app struct {
	cfg      config.Config
	provider interfaces.LoggerProvider
	catalog  *render.Catalog
	metrics  *metrics.Metrics
}

func loadApp() (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(cfg.Logging.LoggerConfig())
	if err != nil {
		return nil, err
	}

	catalog, err := render.LoadCatalog(render.LocalesFS(), cfg.Locale.Default)
	if err != nil {
		return nil, err
	}
	if cfg.Locale.Dir != "" {
		if err := catalog.AddFS(os.DirFS(cfg.Locale.Dir)); err != nil {
			return nil, fmt.Errorf("load locale overrides: %w", err)
		}
	}

	return &app{
		cfg:      cfg,
		provider: provider,
		catalog:  catalog,
	}, nil
}

// withMetrics enables the Prometheus collectors.
func (a *app) withMetrics() {
	a.metrics = metrics.New()
}

func (a *app) extractor(ctx context.Context) (*extraction.Client, error) {
	opts := []extraction.Option{
		extraction.WithEndpoint(a.cfg.Extraction.Endpoint),
		extraction.WithHTTPClient(&http.Client{Timeout: a.cfg.HTTP.Timeout}),
		extraction.WithUserAgent(a.cfg.HTTP.UserAgent + "/" + version),
		extraction.WithLogger(logging.ModuleLogger(a.provider, logging.ExtractionModule)),
	}
	if a.cfg.Extraction.ValidateContract {
		contract, err := extraction.DefaultContract(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, extraction.WithContract(contract))
	}
	if a.metrics != nil {
		opts = append(opts, extraction.WithRecorder(a.metrics))
	}
	return extraction.NewClient(opts...), nil
}
