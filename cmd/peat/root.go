package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// config holds CLI defaults, overridable per-flag.
type config struct {
	ContentDir string `env:"PEAT_CONTENT_DIR" envDefault:"."`
	OutputDir  string `env:"PEAT_OUTPUT_DIR" envDefault:"public"`
	LayoutsDir string `env:"PEAT_LAYOUTS_DIR" envDefault:"layouts"`
	Pattern    string `env:"PEAT_PATTERN" envDefault:"**/*.md"`
	Workers    int    `env:"PEAT_WORKERS" envDefault:"4"`
	SiteTitle  string `env:"PEAT_SITE_TITLE" envDefault:"Posts"`
}

var (
	verbose    bool
	contentDir string
	cfg        config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "peat",
	Short: "A content collection engine for Jekyll-style Markdown posts",
	Long: `Peat parses, validates, and renders directories of Markdown posts
with front-matter headers. One malformed post never breaks the batch.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		if err := env.Parse(&cfg); err != nil {
			return fmt.Errorf("parse environment: %w", err)
		}
		if contentDir != "" {
			cfg.ContentDir = contentDir
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&contentDir, "dir", "d", "", "Content directory (default $PEAT_CONTENT_DIR or .)")
}
