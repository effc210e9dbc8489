package main

import (
	"context"
	"fmt"
	"os"

	"pantryservice/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Pantry inventory tracker with recipe suggestions",
		Long: `pantry tracks item quantities in a shared inventory and asks a
language model for a recipe that uses what is on hand.

Run "pantry serve" to start the API, then "pantry tui" to use it.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(opts),
		newTUICmd(),
		newWatchCmd(opts),
	)
	return root
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
