package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/peat"
	"github.com/aretw0/peat/pkg/core"
)

var (
	listJSON  bool
	filterTag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all posts in the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := peat.New(cfg.ContentDir,
			peat.WithPattern(cfg.Pattern),
			peat.WithWorkers(cfg.Workers),
			peat.WithLogger(slog.Default()),
		)
		if err != nil {
			return fmt.Errorf("initializing peat: %w", err)
		}

		posts, err := service.IndexPosts(context.Background())
		if err != nil {
			return fmt.Errorf("listing posts: %w", err)
		}

		filtered := core.FilterByTag(posts, filterTag)

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				return fmt.Errorf("encoding JSON: %w", err)
			}
			return nil
		}

		for _, post := range filtered {
			date := "          "
			if !post.Date.IsZero() {
				date = post.Date.Format("2006-01-02")
			}
			fmt.Printf("%s  %s - %s\n", date, post.Slug, post.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter posts by tag")
}
