package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/peat"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [slug]",
	Short: "Read a post",
	Long:  `Read a post by its slug. Outputs the raw Markdown body by default, or the full record with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]

		service, err := peat.New(cfg.ContentDir,
			peat.WithPattern(cfg.Pattern),
			peat.WithLogger(slog.Default()),
		)
		if err != nil {
			return fmt.Errorf("initializing peat: %w", err)
		}

		post, err := service.GetPost(context.Background(), slug)
		if err != nil {
			return fmt.Errorf("reading post: %w", err)
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(post); err != nil {
				return fmt.Errorf("encoding JSON: %w", err)
			}
			return nil
		}

		fmt.Print(post.Body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
