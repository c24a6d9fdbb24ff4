package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/peat"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change events for the collection",
	Long:  `Watch the content directory and print an event line for every post file change until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		service, err := peat.New(cfg.ContentDir,
			peat.WithPattern(cfg.Pattern),
			peat.WithLogger(slog.Default()),
		)
		if err != nil {
			return fmt.Errorf("initializing peat: %w", err)
		}

		events, err := service.Watch(ctx, cfg.Pattern)
		if err != nil {
			return fmt.Errorf("starting watch: %w", err)
		}

		slog.Info("watching", "dir", cfg.ContentDir, "pattern", cfg.Pattern)
		for event := range events {
			fmt.Println(event)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
