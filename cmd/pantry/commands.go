package main

import (
	"fmt"
	"strings"

	"pantryservice/internal/app"
	"pantryservice/internal/client"
	"pantryservice/internal/inventory"
	"pantryservice/internal/tui"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cmd.Context(), cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer application.Shutdown()

			return application.Serve()
		},
	}
}

func newTUICmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), client.New(addr))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "http://localhost:8080", "base URL of the pantry API")
	return cmd
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print item change events as they are published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			// logs go to stderr so stdout carries only events
			application, err := app.NewApplication(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Shutdown()

			out := cmd.OutOrStdout()
			return application.Watch(func(e inventory.ItemChangedEvent) {
				fmt.Fprintln(out, formatEvent(e))
			})
		},
	}
}

func formatEvent(e inventory.ItemChangedEvent) string {
	sign := "+"
	if e.Operation == inventory.OperationDecrement {
		sign = "-"
	}
	return strings.Join([]string{
		e.OccurredAt.Format("15:04:05"),
		fmt.Sprintf("%s%g", sign, e.Amount),
		inventory.DisplayName(e.Name),
	}, "  ")
}
