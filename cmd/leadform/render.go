package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the landing page HTML of an empty form",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		templatesDir, _ := cmd.Flags().GetString("templates")

		html, err := leadform.RenderPage(cmd.Context(), a.cfg.Locale.Default, nil,
			vanilla.WithTranslator(a.catalog),
			vanilla.WithTemplatesDir(templatesDir),
		)
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}

		if output == "" {
			_, err = cmd.OutOrStdout().Write(html)
			return err
		}
		if err := os.WriteFile(output, html, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", output)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().String("templates", "", "directory with page.tpl and form.tpl overrides")
	rootCmd.AddCommand(renderCmd)
}
