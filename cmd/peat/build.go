package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/peat"
	"github.com/aretw0/peat/pkg/render"
	"github.com/aretw0/peat/pkg/site"
)

var (
	buildOutput    string
	buildHardWraps bool
	buildSafe      bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the collection into a static HTML site",
	Long: `Parse every post, render Markdown bodies to HTML, apply layouts, and
write the result to the output directory. Posts that fail to parse or
render are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := peat.New(cfg.ContentDir,
			peat.WithPattern(cfg.Pattern),
			peat.WithWorkers(cfg.Workers),
			peat.WithLogger(slog.Default()),
		)
		if err != nil {
			return fmt.Errorf("initializing peat: %w", err)
		}

		report, err := service.CollectPosts(context.Background())
		if err != nil {
			return fmt.Errorf("collecting posts: %w", err)
		}
		for _, failure := range report.Failures {
			fmt.Fprintf(os.Stderr, "skipping: %v\n", failure)
		}

		outputDir := cfg.OutputDir
		if buildOutput != "" {
			outputDir = buildOutput
		}

		builder := site.NewBuilder(site.Config{
			OutputDir:  outputDir,
			LayoutsDir: cfg.LayoutsDir,
			Title:      cfg.SiteTitle,
			Logger:     slog.Default(),
		}, render.New(render.Options{
			HardWraps: buildHardWraps,
			SafeMode:  buildSafe,
		}))

		result, err := builder.Build(context.Background(), report)
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		for _, skipped := range result.Skipped {
			fmt.Fprintf(os.Stderr, "skipping: %v\n", skipped)
		}

		fmt.Printf("rendered %d posts to %s (%d parse failures, %d render failures)\n",
			result.Rendered, outputDir, len(report.Failures), len(result.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (default $PEAT_OUTPUT_DIR or public)")
	buildCmd.Flags().BoolVar(&buildHardWraps, "hard-wraps", false, "Render single newlines as <br>")
	buildCmd.Flags().BoolVar(&buildSafe, "safe", false, "Suppress raw HTML in rendered output")
}
