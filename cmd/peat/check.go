package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/peat"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every post in the collection",
	Long: `Parse the whole collection and report each file that fails. A malformed
post is reported, never fatal; use --strict to exit non-zero when any
failure occurs.`,
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
			return fmt.Errorf("checking posts: %w", err)
		}

		for _, failure := range report.Failures {
			fmt.Fprintf(os.Stderr, "error: %v\n", failure)
		}

		fmt.Printf("%d ok, %d failed\n", len(report.Posts), len(report.Failures))

		if checkStrict && !report.OK() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero if any post fails to parse")
}
