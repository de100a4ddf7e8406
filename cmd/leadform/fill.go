package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/controller"
	"github.com/goliatone/go-leadform/pkg/renderers/tui"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill and submit the form from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		extractor, err := a.extractor(ctx)
		if err != nil {
			return err
		}
		ctrl, err := controller.New(extractor,
			controller.WithTranslator(a.catalog),
			controller.WithLocale(a.cfg.Locale.Default),
			controller.WithLogger(logging.ModuleLogger(a.provider, logging.ControllerModule)),
		)
		if err != nil {
			return err
		}

		renderer, err := tui.New(
			tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
			tui.WithTranslator(a.catalog),
			tui.WithLogger(logging.ModuleLogger(a.provider, logging.TUIModule)),
		)
		if err != nil {
			return err
		}

		if _, err := renderer.Run(ctx, ctrl); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
}
