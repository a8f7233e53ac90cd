// Command shopbot runs the e-commerce customer-support chatbot server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/datadecoders/shopbot-go/internal/app"
	"github.com/datadecoders/shopbot-go/internal/config"
	"github.com/datadecoders/shopbot-go/internal/observability"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "shopbot",
		Short:         "Customer-support chatbot for the store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	root.AddCommand(serve, versionCmd)
	root.RunE = serve.RunE // plain `shopbot` serves
	return root
}

func runServe(configPath string) error {
	// .env is optional; real env vars still apply without one.
	godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	log.Info().Str("version", version).Str("corpus", cfg.Corpus.Path).Msg("starting shopbot")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
