// Package main is the leadform CLI: it serves the landing page, fills the
// form from a terminal or prints the initial page HTML.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-leadform/pkg/config"
)

// version is set at build time via ldflags.
var version = "dev"

// v holds the process wide configuration sources.
var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "leadform",
	Short: "Lead capture form backed by the solution extraction service",
	Long: `leadform collects a company profile through a nine field form, validates it,
sends it to the solution extraction service and shows the markdown answer.

Use "serve" for the web page, "fill" for the terminal version and "render" to
print the page HTML of an empty form.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./leadform.yaml or ~/.config/leadform/leadform.yaml)")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error, fatal)")
	flags.String("log-format", "", "log format (json, console, pretty)")
	flags.String("endpoint", "", "solution extraction endpoint")
	flags.String("locale", "", "default locale")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	v = config.NewViper(cfgFile)

	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("extraction.endpoint", flags.Lookup("endpoint"))
	_ = v.BindPFlag("locale.default", flags.Lookup("locale"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
