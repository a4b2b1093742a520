package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kindph/matching/internal/app"
	"github.com/kindph/matching/internal/config"
	logpkg "github.com/kindph/matching/internal/logger"
)

const appName = "matchctl"

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "matchctl runs the Kind matching engine against the configured stores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"config file (default is config/<ENV>.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn",
		"log level written to stderr: debug, info, warn, error")

	root.AddCommand(
		newMatchCmd(opts),
		newSweepBoostsCmd(opts),
		newCacheCmd(opts),
		newVersionCmd(),
	)
	return root
}

// open loads config and wires the application. The caller closes the App.
func (o *rootOptions) open(ctx context.Context) (*app.App, *zap.Logger, error) {
	env := config.GetEnv()

	var (
		cfg config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("wire application: %w", err)
	}
	return a, logger, nil
}
