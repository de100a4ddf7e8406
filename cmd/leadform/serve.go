package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/internal/server"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
		a, err := loadApp()
		if err != nil {
			return err
		}
		if a.cfg.Server.Metrics {
			a.withMetrics()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		extractor, err := a.extractor(ctx)
		if err != nil {
			return err
		}

		templatesDir, _ := cmd.Flags().GetString("templates")
		renderer, err := vanilla.New(
			vanilla.WithTranslator(a.catalog),
			vanilla.WithTemplatesDir(templatesDir),
			vanilla.WithScriptURL(server.RuntimePrefix+"leadform.js"),
		)
		if err != nil {
			return err
		}

		srv, err := server.New(a.cfg.Server, server.Deps{
			Extractor: extractor,
			Catalog:   a.catalog,
			Renderer:  renderer,
			Metrics:   a.metrics,
			Provider:  a.provider,
			Theme:     a.cfg.Theme.RendererConfig(),
			RuntimeFS: leadform.RuntimeAssetsFS(),
		})
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
	serveCmd.Flags().String("templates", "", "directory with page.tpl and form.tpl overrides")
	rootCmd.AddCommand(serveCmd)
}
