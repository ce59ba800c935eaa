package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahul/kaam/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	observability.Setup(os.Stderr, os.Getenv("KAAM_LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "kaam",
		Short:   "A small tool-using LLM agent",
		Long:    "kaam sends your prompt and a catalog of tools to a language model,\nthen runs the tool the model picks.",
		Version: version,
		// Without a subcommand kaam behaves like 'kaam chat'.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, configPath)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a JSON or YAML config file")

	root.AddCommand(
		newChatCmd(&configPath),
		newAskCmd(&configPath),
		newToolsCmd(&configPath),
		newHistoryCmd(&configPath),
		newServeCmd(&configPath),
	)
	return root
}
